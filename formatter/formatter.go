package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"
)

// Sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrUnsupportedValue  = errors.New("value cannot be formatted")
)

// Output formats understood by ValueFormatter
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// ValueFormatter renders parse values as JSON, YAML or XML
type ValueFormatter struct {
	format string
	pretty bool
}

// NewValueFormatter creates a formatter for the given output format
func NewValueFormatter(format string, pretty bool) (*ValueFormatter, error) {
	format = strings.ToLower(format)

	switch format {
	case FormatJSON, FormatYAML, FormatXML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return &ValueFormatter{format: format, pretty: pretty}, nil
}

// Format renders value. The result always ends with a newline.
func (f *ValueFormatter) Format(value any) (string, error) {
	tree, err := Normalize(value)
	if err != nil {
		return "", err
	}

	switch f.format {
	case FormatYAML:
		return f.formatYAML(tree)
	case FormatXML:
		return f.formatXML(tree)
	default:
		return f.formatJSON(tree)
	}
}

// Write renders value to w
func (f *ValueFormatter) Write(w io.Writer, value any) error {
	out, err := f.Format(value)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)

	return err
}

func (f *ValueFormatter) formatJSON(tree any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.pretty {
		data, err = json.MarshalIndent(tree, "", "  ")
	} else {
		data, err = json.Marshal(tree)
	}

	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	return string(data) + "\n", nil
}

func (f *ValueFormatter) formatYAML(tree any) (string, error) {
	data, err := yaml.MarshalWithOptions(yamlValue(tree), yaml.Flow(!f.pretty))
	if err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}

	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return out, nil
}

// yamlValue turns json.Number leaves into native numbers so YAML does not
// quote them.
func yamlValue(tree any) any {
	switch v := tree.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		if f, err := v.Float64(); err == nil && strconv.FormatFloat(f, 'g', -1, 64) == v.String() {
			return f
		}

		return v.String()
	case map[string]any:
		out := make(yaml.MapSlice, 0, len(v))
		for _, key := range sortedKeys(v) {
			out = append(out, yaml.MapItem{Key: key, Value: yamlValue(v[key])})
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = yamlValue(child)
		}

		return out
	default:
		return v
	}
}

func (f *ValueFormatter) formatXML(tree any) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	appendXML(&doc.Element, tree)

	if f.pretty {
		doc.Indent(2)
	} else {
		doc.Indent(etree.NoIndent)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to encode XML: %w", err)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return out, nil
}

func appendXML(parent *etree.Element, tree any) {
	switch v := tree.(type) {
	case nil:
		parent.CreateElement("null")
	case bool:
		parent.CreateElement("bool").SetText(strconv.FormatBool(v))
	case json.Number:
		parent.CreateElement("number").SetText(v.String())
	case string:
		parent.CreateElement("string").SetText(v)
	case []any:
		array := parent.CreateElement("array")
		for _, child := range v {
			appendXML(array, child)
		}
	case map[string]any:
		object := parent.CreateElement("object")

		for _, key := range sortedKeys(v) {
			member := object.CreateElement("member")
			member.CreateAttr("name", key)
			appendXML(member, v[key])
		}
	}
}
