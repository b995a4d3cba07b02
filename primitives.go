package snapparse

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"
)

// String matches text exactly. The expectation label is the quoted text.
func String(text string) *Parser {
	expected := "'" + text + "'"

	return newParser(func(input string, i int) Result {
		if strings.HasPrefix(input[i:], text) {
			return Success(i+len(text), text)
		}

		return Failure(i, expected)
	})
}

// Regexp matches re anchored at the current offset and yields the text of
// the given capture group (the whole match by default). It fails when the
// group did not take part in the match. The label is the expression source.
func Regexp(re *regexp.Regexp, group ...int) *Parser {
	if re == nil {
		panic(fmt.Errorf("%w: Regexp requires a compiled expression", ErrInvalidPattern))
	}

	g := 0
	switch len(group) {
	case 0:
	case 1:
		g = group[0]
	default:
		panic(fmt.Errorf("%w: Regexp accepts one group, got %d", ErrInvalidGroup, len(group)))
	}

	if g < 0 || g > re.NumSubexp() {
		panic(fmt.Errorf("%w: %d for %s", ErrInvalidGroup, g, re))
	}

	// \A keeps the match glued to the cursor even when (?m) is set.
	anchored := regexp.MustCompile(`\A(?:` + re.String() + `)`)
	expected := re.String()

	return newParser(func(input string, i int) Result {
		rest := input[i:]

		loc := anchored.FindStringSubmatchIndex(rest)
		if loc != nil && loc[2*g] >= 0 {
			return Success(i+loc[1], rest[loc[2*g]:loc[2*g+1]])
		}

		return Failure(i, expected)
	})
}

// Pattern compiles expr and behaves like Regexp.
func Pattern(expr string, group ...int) *Parser {
	re, err := regexp.Compile(expr)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrInvalidPattern, err))
	}

	return Regexp(re, group...)
}

// PatternFlags compiles expr with single letter flags. i, m, s and U map to
// the matching inline flags. g and y would carry a scan position from one
// attempt to the next, so they are rejected along with unknown letters.
func PatternFlags(expr, flags string, group ...int) *Parser {
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
		default:
			panic(fmt.Errorf("%w: %q in %q", ErrUnsupportedFlag, f, flags))
		}
	}

	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}

	return Pattern(expr, group...)
}

// Test consumes one character when pred accepts it.
func Test(pred func(r rune) bool) *Parser {
	mustFunc("Test", pred)

	return test("a character matching "+funcName(pred), pred)
}

// OneOf consumes one character contained in set.
func OneOf(set string) *Parser {
	return test(fmt.Sprintf("a character matching one of %q", set), func(r rune) bool {
		return strings.ContainsRune(set, r)
	})
}

// NoneOf consumes one character not contained in set.
func NoneOf(set string) *Parser {
	return test(fmt.Sprintf("a character matching none of %q", set), func(r rune) bool {
		return !strings.ContainsRune(set, r)
	})
}

func test(expected string, pred func(r rune) bool) *Parser {
	return newParser(func(input string, i int) Result {
		if i < len(input) {
			r, size := utf8.DecodeRuneInString(input[i:])
			if pred(r) {
				return Success(i+size, input[i:i+size])
			}
		}

		return Failure(i, expected)
	})
}

// TakeWhile consumes the longest prefix whose characters all satisfy pred.
// It never fails.
func TakeWhile(pred func(r rune) bool) *Parser {
	mustFunc("TakeWhile", pred)

	return newParser(func(input string, i int) Result {
		j := i
		for j < len(input) {
			r, size := utf8.DecodeRuneInString(input[j:])
			if !pred(r) {
				break
			}

			j += size
		}

		return Success(j, input[i:j])
	})
}

// Succeed yields value without consuming input.
func Succeed(value any) *Parser {
	return newParser(func(_ string, i int) Result {
		return Success(i, value)
	})
}

// Of is an alias of Succeed.
func Of(value any) *Parser {
	return Succeed(value)
}

// Fail never matches and reports expected as the label.
func Fail(expected string) *Parser {
	return newParser(func(_ string, i int) Result {
		return Failure(i, expected)
	})
}

// Empty is the identity of Or.
func Empty() *Parser {
	return Fail("fantasy-land/empty")
}

func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "predicate"
	}

	name := f.Name()
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		name = name[slash+1:]
	}

	return name
}
