package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/shibukawa/snapparse"
	"github.com/shibukawa/snapparse/langs/lisp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
	}{
		{name: "float", value: 1.5, expected: json.Number("1.5")},
		{name: "integral float", value: float64(3), expected: json.Number("3")},
		{name: "decimal", value: decimal.RequireFromString("0.30"), expected: json.Number("0.3")},
		{name: "int", value: 42, expected: json.Number("42")},
		{name: "symbol", value: lisp.Symbol("define"), expected: "define"},
		{
			name:     "span",
			value:    snapparse.Span{Start: 1, End: 3, Value: "ab"},
			expected: map[string]any{"start": json.Number("1"), "end": json.Number("3"), "value": "ab"},
		},
		{
			name:     "nested",
			value:    map[string]any{"xs": []any{1.0, nil, true}},
			expected: map[string]any{"xs": []any{json.Number("1"), nil, true}},
		},
		{
			name:     "struct via JSON",
			value:    struct{ Name string }{Name: "x"},
			expected: map[string]any{"Name": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Unsupported(t *testing.T) {
	_, err := Normalize(map[string]any{"ch": make(chan int)})
	assert.IsError(t, err, ErrUnsupportedValue)
}

func TestNewValueFormatter_RejectsUnknownFormat(t *testing.T) {
	_, err := NewValueFormatter("toml", true)
	assert.IsError(t, err, ErrUnsupportedFormat)
}

func TestValueFormatter_JSON(t *testing.T) {
	value := map[string]any{"b": "x", "a": []any{decimal.NewFromInt(7), lisp.Symbol("q")}}

	compact, err := NewValueFormatter("json", false)
	assert.NoError(t, err)

	out, err := compact.Format(value)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":[7,"q"],"b":"x"}`+"\n", out)

	pretty, err := NewValueFormatter("JSON", true)
	assert.NoError(t, err)

	out, err = pretty.Format([]any{1.0})
	assert.NoError(t, err)
	assert.Equal(t, "[\n  1\n]\n", out)
}

func TestValueFormatter_YAML(t *testing.T) {
	f, err := NewValueFormatter("yaml", true)
	assert.NoError(t, err)

	out, err := f.Format(map[string]any{"b": "x", "a": 1.0, "c": 0.25})
	assert.NoError(t, err)
	assert.Equal(t, "a: 1\nb: x\nc: 0.25\n", out)
}

func TestValueFormatter_XML(t *testing.T) {
	f, err := NewValueFormatter("xml", false)
	assert.NoError(t, err)

	var b strings.Builder
	assert.NoError(t, f.Write(&b, map[string]any{"a": []any{1.0, true, nil}, "b": "x<y"}))

	out := b.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<object><member name="a"><array><number>1</number><bool>true</bool><null/></array></member>`)
	assert.Contains(t, out, `<member name="b"><string>x&lt;y</string></member></object>`)
}
