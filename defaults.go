package snapparse

import "unicode/utf8"

var (
	// EOF matches only at the end of the input.
	EOF = newParser(func(input string, i int) Result {
		if i < len(input) {
			return Failure(i, "EOF")
		}

		return Success(i, nil)
	})
	// Index yields the current offset as an int without consuming input.
	// PositionAt turns it into a line and column.
	Index = newParser(func(_ string, i int) Result {
		return Success(i, i)
	})
	// Any consumes one character, whatever it is.
	Any = newParser(func(input string, i int) Result {
		if i >= len(input) {
			return Failure(i, "any character")
		}

		_, size := utf8.DecodeRuneInString(input[i:])

		return Success(i+size, input[i:i+size])
	})
	// All consumes the rest of the input.
	All = newParser(func(input string, i int) Result {
		return Success(len(input), input[i:])
	})

	// Digit parses a single ASCII digit.
	Digit = Pattern(`[0-9]`).Desc("a digit")
	// Digits parses zero or more ASCII digits.
	Digits = Pattern(`[0-9]*`)
	// Letter parses a single ASCII letter.
	Letter = PatternFlags(`[a-z]`, "i").Desc("a letter")
	// Letters parses zero or more ASCII letters.
	Letters = PatternFlags(`[a-z]*`, "i")
	// Whitespace parses one or more whitespace characters.
	Whitespace = Pattern(`\s+`).Desc("whitespace")
	// OptWhitespace parses zero or more whitespace characters.
	OptWhitespace = Pattern(`\s*`)
)
