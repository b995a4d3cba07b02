package snapparse

import (
	"fmt"
	"reflect"
)

// Parser is an immutable matcher. Running it on the same input and offset
// always produces the same Result, so a Parser can be shared freely between
// grammars and goroutines.
type Parser struct {
	run func(input string, i int) Result
}

func newParser(run func(input string, i int) Result) *Parser {
	return &Parser{run: run}
}

// Run attempts to match at offset i of input. It is the building block for
// Custom parsers that need to call other parsers directly.
func (p *Parser) Run(input string, i int) Result {
	return p.run(input, i)
}

// Custom wraps a hand written matching function as a Parser. Labels in the
// returned Result are normalized so they merge with the rest of the grammar.
func Custom(fn func(input string, i int) Result) *Parser {
	mustFunc("Custom", fn)

	return newParser(func(input string, i int) Result {
		result := fn(input, i)
		result.Expected = normalizeExpected(result.Expected)

		return result
	})
}

func mustParsers(op string, parsers ...*Parser) {
	for i, p := range parsers {
		if p == nil {
			panic(fmt.Errorf("%w: %s argument %d is nil", ErrNilParser, op, i+1))
		}
	}
}

func mustFunc(op string, fn any) {
	if fn == nil || reflect.ValueOf(fn).IsNil() {
		panic(fmt.Errorf("%w: %s requires a function", ErrNilFunction, op))
	}
}
