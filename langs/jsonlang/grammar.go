// Package jsonlang is a JSON grammar built from snapparse combinators.
//
// Values come out as map[string]any, []any, float64, string, bool and nil,
// the same shapes encoding/json produces for an `any` target.
package jsonlang

import (
	"encoding/json"

	"github.com/shibukawa/snapparse"
)

// Document parses a complete JSON text with optional surrounding whitespace.
var Document = newGrammar()

// Parse parses input as a single JSON value.
func Parse(input string) (any, error) {
	return Document.Parse(input)
}

func token(p *snapparse.Parser) *snapparse.Parser {
	return p.Skip(snapparse.OptWhitespace)
}

func word(text string) *snapparse.Parser {
	return token(snapparse.String(text))
}

func newGrammar() *snapparse.Parser {
	var value *snapparse.Parser

	valueRef := snapparse.LazyDesc("a JSON value", func() *snapparse.Parser { return value })

	null := word("null").Result(nil)
	boolean := snapparse.Alt(word("true").Result(true), word("false").Result(false))

	number := token(snapparse.Pattern(`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`)).
		Chain(func(v any) *snapparse.Parser {
			var f float64
			if err := json.Unmarshal([]byte(v.(string)), &f); err != nil {
				return snapparse.Fail("a number in float64 range")
			}

			return snapparse.Succeed(f)
		}).
		Desc("a number")

	str := token(snapparse.Pattern(`"(?:\\["\\/bfnrt]|\\u[0-9a-fA-F]{4}|[^"\\\x00-\x1f])*"`)).
		Map(func(v any) any {
			var s string
			// the pattern only admits valid JSON string literals
			_ = json.Unmarshal([]byte(v.(string)), &s)

			return s
		}).
		Desc("a string")

	array := word("[").
		Then(snapparse.SepBy(valueRef, word(","))).
		Skip(word("]"))

	pair := snapparse.Seq(str, word(":").Then(valueRef))

	object := word("{").
		Then(snapparse.SepBy(pair, word(","))).
		Skip(word("}")).
		Map(func(v any) any {
			pairs := v.([]any)
			members := make(map[string]any, len(pairs))

			for _, raw := range pairs {
				kv := raw.([]any)
				members[kv[0].(string)] = kv[1]
			}

			return members
		})

	value = snapparse.Alt(object, array, str, number, null, boolean)

	return snapparse.OptWhitespace.Then(valueRef)
}
