package snapparse

import "fmt"

// Unbounded is the max argument of Times for repetition without an upper limit.
const Unbounded = -1

// Seq runs parsers one after another and yields their values as []any.
// It stops at the first failure.
func Seq(parsers ...*Parser) *Parser {
	mustParsers("Seq", parsers...)

	return newParser(func(input string, i int) Result {
		values := make([]any, len(parsers))
		last := noResult

		for j, p := range parsers {
			last = merge(p.run(input, i), last)
			if !last.Status {
				return last
			}

			values[j] = last.Value
			i = last.Index
		}

		return merge(Success(i, values), last)
	})
}

// SeqMap is Seq followed by mapper applied to the collected values.
func SeqMap(mapper func(values ...any) any, parsers ...*Parser) *Parser {
	mustFunc("SeqMap", mapper)

	return Seq(parsers...).Map(func(values any) any {
		return mapper(values.([]any)...)
	})
}

// Alt tries parsers in order at the same offset and returns the first
// success. When all of them fail the failures are merged, so the deepest one
// is reported.
func Alt(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		return Fail("zero alternates")
	}

	mustParsers("Alt", parsers...)

	return newParser(func(input string, i int) Result {
		last := noResult

		for _, p := range parsers {
			last = merge(p.run(input, i), last)
			if last.Status {
				return last
			}
		}

		return last
	})
}

// Times repeats p at least min and at most max times (both inclusive) and
// yields the values as []any. max may be Unbounded.
//
// The first min matches are mandatory and a failure among them fails the
// whole repetition. Later failures just end it. An unbounded repetition also
// ends on a match that consumed nothing, since repeating it could not make
// progress; that empty match is not collected.
func (p *Parser) Times(min, max int) *Parser {
	mustParsers("Times", p)

	if min < 0 || (max != Unbounded && max < min) {
		panic(fmt.Errorf("%w: Times(%d, %d)", ErrInvalidRepeat, min, max))
	}

	return newParser(func(input string, i int) Result {
		values := make([]any, 0, min)
		last := noResult

		times := 0
		for ; times < min; times++ {
			result := p.run(input, i)
			last = merge(result, last)

			if !result.Status {
				return last
			}

			values = append(values, result.Value)
			i = result.Index
		}

		for ; max == Unbounded || times < max; times++ {
			result := p.run(input, i)
			last = merge(result, last)

			if !result.Status || (max == Unbounded && result.Index == i) {
				break
			}

			values = append(values, result.Value)
			i = result.Index
		}

		return merge(Success(i, values), last)
	})
}

// Exactly repeats p exactly n times.
func (p *Parser) Exactly(n int) *Parser {
	return p.Times(n, n)
}

// Many repeats p zero or more times.
func (p *Parser) Many() *Parser {
	return p.Times(0, Unbounded)
}

// AtLeast repeats p n or more times.
func (p *Parser) AtLeast(n int) *Parser {
	return p.Times(n, Unbounded)
}

// AtMost repeats p up to n times.
func (p *Parser) AtMost(n int) *Parser {
	return p.Times(0, n)
}

// SepBy1 parses one or more elements separated by separator and yields the
// elements as []any. A trailing separator that is not followed by an element
// is left unconsumed.
func SepBy1(element, separator *Parser) *Parser {
	mustParsers("SepBy1", element, separator)

	return newParser(func(input string, i int) Result {
		first := element.run(input, i)
		if !first.Status {
			return first
		}

		values := []any{first.Value}
		last := first
		i = first.Index

		for {
			sep := separator.run(input, i)
			last = merge(sep, last)

			if !sep.Status {
				break
			}

			next := element.run(input, sep.Index)
			last = merge(next, last)

			if !next.Status || next.Index == i {
				break
			}

			values = append(values, next.Value)
			i = next.Index
		}

		return merge(Success(i, values), last)
	})
}

// SepBy is SepBy1 that also accepts zero elements, yielding an empty list
// without consuming input.
func SepBy(element, separator *Parser) *Parser {
	return Alt(SepBy1(element, separator), Succeed([]any{}))
}
