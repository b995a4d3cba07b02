package snapparse

import "fmt"

// Span is the value produced by Mark: the wrapped value plus the offsets it
// was read from. Start and End resolve to line and column with PositionAt.
type Span struct {
	Start int
	End   int
	Value any
}

// Positions resolves both ends of the span against input.
func (s Span) Positions(input string) (SourcePosition, SourcePosition) {
	return PositionAt(input, s.Start), PositionAt(input, s.End)
}

// Map replaces a successful value with fn(value).
func (p *Parser) Map(fn func(value any) any) *Parser {
	mustParsers("Map", p)
	mustFunc("Map", fn)

	return newParser(func(input string, i int) Result {
		result := p.run(input, i)
		if !result.Status {
			return result
		}

		return merge(Success(result.Index, fn(result.Value)), result)
	})
}

// Result replaces a successful value with value.
func (p *Parser) Result(value any) *Parser {
	return p.Map(func(any) any {
		return value
	})
}

// Chain runs p, passes its value to fn and continues with the parser fn
// returns at the offset where p stopped. It is the way to express grammars
// where what comes next depends on what was already read.
func (p *Parser) Chain(fn func(value any) *Parser) *Parser {
	mustParsers("Chain", p)
	mustFunc("Chain", fn)

	return newParser(func(input string, i int) Result {
		result := p.run(input, i)
		if !result.Status {
			return result
		}

		next := fn(result.Value)
		if next == nil {
			panic(fmt.Errorf("%w: Chain function returned nil", ErrNilParser))
		}

		return merge(next.run(input, result.Index), result)
	})
}

// Then runs p and next in order and keeps the value of next.
func (p *Parser) Then(next *Parser) *Parser {
	mustParsers("Then", p, next)

	return Seq(p, next).Map(func(values any) any {
		return values.([]any)[1]
	})
}

// Skip runs p and next in order and keeps the value of p.
func (p *Parser) Skip(next *Parser) *Parser {
	mustParsers("Skip", p, next)

	return Seq(p, next).Map(func(values any) any {
		return values.([]any)[0]
	})
}

// Or tries p, then alternative at the same offset.
func (p *Parser) Or(alternative *Parser) *Parser {
	return Alt(p, alternative)
}

// Concat is an alias of Or.
func (p *Parser) Concat(alternative *Parser) *Parser {
	return p.Or(alternative)
}

// Desc reports expected instead of the original labels when p fails at the
// offset it started from. Failures recorded deeper in the input keep their
// own labels.
func (p *Parser) Desc(expected string) *Parser {
	mustParsers("Desc", p)

	return newParser(func(input string, i int) Result {
		result := p.run(input, i)
		if !result.Status && result.Furthest == i {
			result.Expected = []string{expected}
		}

		return result
	})
}

// Mark wraps the value of p in a Span holding its start and end offsets.
func (p *Parser) Mark() *Parser {
	mustParsers("Mark", p)

	return SeqMap(func(values ...any) any {
		return Span{
			Start: values[0].(int),
			Value: values[1],
			End:   values[2].(int),
		}
	}, Index, p, Index)
}

// Ap applies the func(any) any produced by p to the value produced by arg.
func (p *Parser) Ap(arg *Parser) *Parser {
	mustParsers("Ap", p, arg)

	return SeqMap(func(values ...any) any {
		fn, ok := values[0].(func(any) any)
		if !ok {
			panic(fmt.Errorf("%w: got %T", ErrNotFunctionValue, values[0]))
		}

		return fn(values[1])
	}, p, arg)
}
