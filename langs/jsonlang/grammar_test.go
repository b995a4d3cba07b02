package jsonlang

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/snapparse"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{name: "null", input: "null", expected: nil},
		{name: "true", input: " true ", expected: true},
		{name: "integer", input: "42", expected: float64(42)},
		{name: "negative exponent", input: "-1.5e-3", expected: -0.0015},
		{name: "string escapes", input: `"a\"b\\c\né😀"`, expected: "a\"b\\c\né😀"},
		{name: "empty array", input: "[ ]", expected: []any{}},
		{name: "empty object", input: "{}", expected: map[string]any{}},
		{
			name:  "nested",
			input: "{\n  \"a\": [1, {\"b\": null}],\n  \"c\": \"d\"\n}",
			expected: map[string]any{
				"a": []any{float64(1), map[string]any{"b": nil}},
				"c": "d",
			},
		},
		{name: "duplicate keys keep last", input: `{"a":1,"a":2}`, expected: map[string]any{"a": float64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Parse(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestParse_AgreesWithEncodingJSON(t *testing.T) {
	inputs := []string{
		`{"users":[{"id":1,"tags":["x","y"],"active":true},{"id":2,"tags":[],"active":false}]}`,
		`[0, -0.25, 1E2, "\t", {"": null}]`,
	}

	for _, input := range inputs {
		var expected any
		assert.NoError(t, json.Unmarshal([]byte(input), &expected))

		value, err := Parse(input)
		assert.NoError(t, err)
		assert.Equal(t, expected, value)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		position snapparse.SourcePosition
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			position: snapparse.SourcePosition{Offset: 0, Line: 1, Column: 1},
			expected: []string{"a JSON value"},
		},
		{
			name:     "trailing comma",
			input:    "[1,]",
			position: snapparse.SourcePosition{Offset: 3, Line: 1, Column: 4},
			expected: []string{"a JSON value"},
		},
		{
			name:     "missing colon",
			input:    "{\n\"a\" 1}",
			position: snapparse.SourcePosition{Offset: 6, Line: 2, Column: 5},
			expected: []string{"':'"},
		},
		{
			name:     "leading zero",
			input:    "01",
			position: snapparse.SourcePosition{Offset: 1, Line: 1, Column: 2},
			expected: []string{"EOF"},
		},
		{
			name:     "invalid escape",
			input:    `"\x"`,
			position: snapparse.SourcePosition{Offset: 0, Line: 1, Column: 1},
			expected: []string{"a JSON value"},
		},
		{
			name:     "number out of range",
			input:    "1e400",
			position: snapparse.SourcePosition{Offset: 5, Line: 1, Column: 6},
			expected: []string{"a number in float64 range"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Document.ParseResult(tt.input)
			assert.False(t, outcome.Status)
			assert.Equal(t, tt.position, outcome.Position)
			assert.Equal(t, tt.expected, outcome.Expected)
		})
	}
}

func TestParse_ErrorMessage(t *testing.T) {
	_, err := Parse(`{"a": tru}`)
	assert.True(t, errors.Is(err, snapparse.ErrParseFailed))
	assert.Equal(t, "expected a JSON value at line 1 column 7, got '...tru}'", err.Error())
}

func TestParse_DeepNesting(t *testing.T) {
	depth := 2000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	value, err := Parse(input)
	assert.NoError(t, err)

	for range depth - 1 {
		items, ok := value.([]any)
		assert.True(t, ok)
		assert.Equal(t, 1, len(items))
		value = items[0]
	}

	assert.Equal(t, any([]any{}), value)
}
