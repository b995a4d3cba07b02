package snapparse

import (
	"fmt"
	"sync"
)

// Lazy returns a parser whose definition is produced by builder on first
// use. It lets a grammar refer to rules that are declared later, or to
// itself:
//
//	var value *snapparse.Parser
//	value = snapparse.Lazy(func() *snapparse.Parser {
//		return snapparse.Alt(number, list(value))
//	})
//
// builder runs at most once, even when the parser is first used from several
// goroutines at the same time.
func Lazy(builder func() *Parser) *Parser {
	mustFunc("Lazy", builder)

	var (
		once     sync.Once
		resolved *Parser
	)

	return newParser(func(input string, i int) Result {
		once.Do(func() {
			resolved = builder()
		})

		if resolved == nil {
			panic(fmt.Errorf("%w: Lazy builder returned nil", ErrNilParser))
		}

		return resolved.run(input, i)
	})
}

// LazyDesc is Lazy with a Desc label.
func LazyDesc(expected string, builder func() *Parser) *Parser {
	return Lazy(builder).Desc(expected)
}
