package lisp

import (
	"strconv"
	"strings"
)

// Print renders a parsed form back to source text. Quote forms are printed
// in their long `(quote x)` shape.
func Print(form any) string {
	var b strings.Builder
	write(&b, form)

	return b.String()
}

func write(b *strings.Builder, form any) {
	switch v := form.(type) {
	case []any:
		b.WriteByte('(')

		for i, item := range v {
			if i > 0 {
				b.WriteByte(' ')
			}

			write(b, item)
		}

		b.WriteByte(')')
	case string:
		b.WriteString(strconv.Quote(v))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case Symbol:
		b.WriteString(string(v))
	}
}
