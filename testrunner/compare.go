package testrunner

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/snapparse/formatter"
)

func normalize(value any) (any, error) {
	return formatter.Normalize(value)
}

// valuesEqual compares two normalized trees. Numbers are equal when their
// decimal values are, so `7`, `7.0` and `7e0` match.
func valuesEqual(expected, actual any) bool {
	switch e := expected.(type) {
	case json.Number:
		a, ok := actual.(json.Number)
		if !ok {
			return false
		}

		ed, err := decimal.NewFromString(e.String())
		if err != nil {
			return e == a
		}

		ad, err := decimal.NewFromString(a.String())
		if err != nil {
			return false
		}

		return ed.Equal(ad)
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok || len(a) != len(e) {
			return false
		}

		for key, ev := range e {
			av, ok := a[key]
			if !ok || !valuesEqual(ev, av) {
				return false
			}
		}

		return true
	case []any:
		a, ok := actual.([]any)
		if !ok || len(a) != len(e) {
			return false
		}

		for i := range e {
			if !valuesEqual(e[i], a[i]) {
				return false
			}
		}

		return true
	default:
		return expected == actual
	}
}

func compactJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "<unprintable>"
	}

	return string(data)
}
