// Package lisp parses s-expressions.
//
// A program is a sequence of forms. Lists become []any, numbers float64,
// strings string and everything else a Symbol. `'x` is read as
// `(quote x)` and `;` starts a comment that runs to the end of the line.
package lisp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shibukawa/snapparse"
)

// Symbol is an identifier atom such as `define` or `+`.
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

var (
	// Form parses a single form.
	Form = newGrammar()
	// Program parses zero or more forms.
	Program = ignored.Then(Form.Many())

	ignored = snapparse.Pattern(`(?:\s|;[^\n]*)*`)

	numberAtom = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

// Parse reads every form in input.
func Parse(input string) ([]any, error) {
	value, err := Program.Parse(input)
	if err != nil {
		return nil, err
	}

	return value.([]any), nil
}

func lexeme(p *snapparse.Parser) *snapparse.Parser {
	return p.Skip(ignored)
}

func atom(text string) any {
	if numberAtom.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}

	return Symbol(text)
}

func newGrammar() *snapparse.Parser {
	var form *snapparse.Parser

	formRef := snapparse.LazyDesc("a form", func() *snapparse.Parser { return form })

	symbolOrNumber := lexeme(snapparse.Pattern(`[^\s()';"]+`)).Map(func(v any) any {
		return atom(v.(string))
	})

	str := lexeme(snapparse.Pattern(`"(?:\\.|[^"\\])*"`)).
		Chain(func(v any) *snapparse.Parser {
			s, err := strconv.Unquote(strings.ReplaceAll(v.(string), "\n", `\n`))
			if err != nil {
				return snapparse.Fail("a valid string escape")
			}

			return snapparse.Succeed(s)
		}).
		Desc("a string")

	list := lexeme(snapparse.String("(")).
		Then(formRef.Many()).
		Skip(lexeme(snapparse.String(")")))

	quoted := lexeme(snapparse.String("'")).Then(formRef).Map(func(v any) any {
		return []any{Symbol("quote"), v}
	})

	form = snapparse.Alt(list, quoted, str, symbolOrNumber)

	return formRef
}
