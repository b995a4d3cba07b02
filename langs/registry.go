// Package langs lists the grammars bundled with snapparse.
package langs

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shibukawa/snapparse"
	"github.com/shibukawa/snapparse/explang"
	"github.com/shibukawa/snapparse/langs/calc"
	"github.com/shibukawa/snapparse/langs/jsonlang"
	"github.com/shibukawa/snapparse/langs/lisp"
)

// ErrUnknownLanguage is returned by Lookup for unregistered names.
var ErrUnknownLanguage = errors.New("unknown language")

// suggestionDistance is the largest edit distance Suggest still reports.
const suggestionDistance = 3

// Language describes one bundled grammar.
type Language struct {
	Name        string
	Description string
	Parser      *snapparse.Parser
	// Eval post-processes a parsed value. nil when the grammar has no
	// evaluation step.
	Eval func(value any) (any, error)
}

// Title is the display name used in headings.
func (l Language) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(l.Name, "-", " "))
}

// Run parses input and applies Eval when the language has one.
func (l Language) Run(input string) (any, error) {
	value, err := l.Parser.Parse(input)
	if err != nil || l.Eval == nil {
		return value, err
	}

	return l.Eval(value)
}

var registry = []Language{
	{
		Name:        "json",
		Description: "JSON documents as objects, arrays, numbers, strings, booleans and null",
		Parser:      jsonlang.Document,
	},
	{
		Name:        "calc",
		Description: "arithmetic expressions evaluated with exact decimals",
		Parser:      calc.Expression,
		Eval:        calc.Eval,
	},
	{
		Name:        "lisp",
		Description: "s-expression programs with comments and quote sugar",
		Parser:      lisp.Program,
	},
	{
		Name:        "path",
		Description: "access paths such as order?.items[0].name",
		Parser:      explang.Path,
	},
}

// All returns every registered language in registration order.
func All() []Language {
	return slices.Clone(registry)
}

// Names returns the registered language names in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, l := range registry {
		names[i] = l.Name
	}

	return names
}

// Lookup finds a language by name, case-insensitively.
func Lookup(name string) (Language, error) {
	for _, l := range registry {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}

	if suggestions := Suggest(name); len(suggestions) > 0 {
		return Language{}, fmt.Errorf("%w %q, did you mean %s?", ErrUnknownLanguage, name, strings.Join(suggestions, " or "))
	}

	return Language{}, fmt.Errorf("%w %q, available: %s", ErrUnknownLanguage, name, strings.Join(Names(), ", "))
}

// Suggest returns the registered names closest to name by edit distance,
// sorted, or nil when none is close enough.
func Suggest(name string) []string {
	var closest []string

	best := suggestionDistance + 1
	name = strings.ToLower(name)

	for _, candidate := range Names() {
		distance := levenshtein.ComputeDistance(name, candidate)

		switch {
		case distance < best:
			closest = []string{candidate}
			best = distance
		case distance == best:
			closest = append(closest, candidate)
		}
	}

	slices.Sort(closest)

	return closest
}
