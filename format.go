package snapparse

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DefaultExcerptLength is the number of characters of input quoted after "got".
const DefaultExcerptLength = 12

// ErrorFormatter renders parse failures as one-line messages.
type ErrorFormatter struct {
	// ExcerptLength is how many characters of input to quote. Zero means DefaultExcerptLength.
	ExcerptLength int
	// Color highlights the expectation and the excerpt for terminals.
	Color bool
}

// FormatError renders err against the input it was produced from:
//
//	expected one of 'a', 'b' at line 1 column 4, got '...xyz'
func FormatError(input string, err *ParseError) string {
	return ErrorFormatter{}.Format(input, err.Position, err.Expected)
}

// Format renders a failure at pos that expected the given labels.
func (f ErrorFormatter) Format(input string, pos SourcePosition, expected []string) string {
	var b strings.Builder

	b.WriteString("expected ")
	b.WriteString(f.paint(color.FgYellow, formatExpected(expected)))
	fmt.Fprintf(&b, " at line %d column %d, got ", pos.Line, pos.Column)

	if pos.Offset >= len(input) {
		b.WriteString(f.paint(color.FgRed, "the end of the stream"))
	} else {
		b.WriteString(f.paint(color.FgRed, f.excerpt(input, pos.Offset)))
	}

	return b.String()
}

func (f ErrorFormatter) excerpt(input string, offset int) string {
	limit := f.ExcerptLength
	if limit <= 0 {
		limit = DefaultExcerptLength
	}

	rest := []rune(input[offset:])

	prefix := "'"
	if offset > 0 {
		prefix = "'..."
	}

	suffix := "'"
	if len(rest) > limit {
		rest = rest[:limit]
		suffix = "...'"
	}

	return prefix + string(rest) + suffix
}

func (f ErrorFormatter) paint(attr color.Attribute, s string) string {
	if !f.Color {
		return s
	}

	return color.New(attr, color.Bold).Sprint(s)
}

func formatExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "valid input"
	case 1:
		return expected[0]
	default:
		return "one of " + strings.Join(expected, ", ")
	}
}
