package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/snapparse"
)

// Normalize converts a parse value into a JSON shaped tree: map[string]any,
// []any, string, bool, nil and json.Number for every numeric type.
// Values of other types go through their JSON encoding.
func Normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string, json.Number:
		return v, nil
	case decimal.Decimal:
		return json.Number(v.String()), nil
	case float64:
		return floatNumber(v), nil
	case float32:
		return floatNumber(float64(v)), nil
	case int:
		return json.Number(strconv.Itoa(v)), nil
	case int64:
		return json.Number(strconv.FormatInt(v, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(v, 10)), nil
	case snapparse.Span:
		inner, err := Normalize(v.Value)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"start": json.Number(strconv.Itoa(v.Start)),
			"end":   json.Number(strconv.Itoa(v.End)),
			"value": inner,
		}, nil
	case map[string]any:
		out := make(map[string]any, len(v))

		for key, child := range v {
			normalized, err := Normalize(child)
			if err != nil {
				return nil, err
			}

			out[key] = normalized
		}

		return out, nil
	case []any:
		out := make([]any, len(v))

		for i, child := range v {
			normalized, err := Normalize(child)
			if err != nil {
				return nil, err
			}

			out[i] = normalized
		}

		return out, nil
	case fmt.Stringer:
		if reflect.ValueOf(v).Kind() == reflect.String {
			return v.String(), nil
		}
	}

	return viaJSON(value)
}

// floatNumber renders f as a JSON number. JSON has no NaN or infinities,
// so those become strings.
func floatNumber(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func viaJSON(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrUnsupportedValue, value, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrUnsupportedValue, value, err)
	}

	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
