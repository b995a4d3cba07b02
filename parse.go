package snapparse

import (
	"strings"
	"unicode/utf8"
)

// SourcePosition locates an offset in the input. Line and Column are 1-based
// and Column counts characters, not bytes.
type SourcePosition struct {
	Offset int
	Line   int
	Column int
}

// PositionAt resolves offset against input. Offsets outside the input are
// clamped to its bounds.
func PositionAt(input string, offset int) SourcePosition {
	if offset < 0 {
		offset = 0
	}

	if offset > len(input) {
		offset = len(input)
	}

	head := input[:offset]
	lineStart := strings.LastIndexByte(head, '\n') + 1

	return SourcePosition{
		Offset: offset,
		Line:   strings.Count(head, "\n") + 1,
		Column: utf8.RuneCountInString(head[lineStart:]) + 1,
	}
}

// Outcome is the result of running a whole parse. On success Value is set;
// otherwise Position and Expected describe the furthest failure.
type Outcome struct {
	Status   bool
	Value    any
	Position SourcePosition
	Expected []string
}

// ParseResult runs p over the whole input. Input left over after p is a
// failure at the first unconsumed offset.
func (p *Parser) ParseResult(input string) Outcome {
	mustParsers("Parse", p)

	result := p.run(input, 0)
	if result.Status {
		end := merge(EOF.run(input, result.Index), result)
		if end.Status {
			return Outcome{Status: true, Value: result.Value}
		}

		result = end
	}

	return Outcome{
		Position: PositionAt(input, result.Furthest),
		Expected: result.Expected,
	}
}

// Parse runs p over the whole input and returns its value, or a *ParseError
// describing the furthest failure.
func (p *Parser) Parse(input string) (any, error) {
	outcome := p.ParseResult(input)
	if outcome.Status {
		return outcome.Value, nil
	}

	return nil, &ParseError{
		Position: outcome.Position,
		Expected: outcome.Expected,
		input:    input,
	}
}

// ParseError is returned by Parse when the input does not match.
type ParseError struct {
	Position SourcePosition
	Expected []string
	input    string
}

func (e *ParseError) Error() string {
	return FormatError(e.input, e)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailed
}
