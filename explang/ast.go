package explang

import (
	"strconv"
	"strings"
)

// Position represents the start offset of a node within the original expression.
// Offset is the rune index (0-based), Line/Column are 1-based for error reporting.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
	Length int `json:"length"`
}

// StepKind indicates what kind of access step is described.
type StepKind int

const (
	StepIdentifier StepKind = iota
	StepMember
	StepIndex
)

func (k StepKind) String() string {
	switch k {
	case StepIdentifier:
		return "identifier"
	case StepMember:
		return "member"
	case StepIndex:
		return "index"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Step represents a flattened access step such as identifier, member access, or index.
type Step struct {
	Kind       StepKind `json:"kind"`
	Identifier string   `json:"identifier,omitempty"`
	Property   string   `json:"property,omitempty"`
	Index      int      `json:"index,omitempty"`
	Safe       bool     `json:"safe,omitempty"`
	Pos        Position `json:"pos"`
}

// FormatPath renders steps back into canonical path syntax (no whitespace).
func FormatPath(steps []Step) string {
	var b strings.Builder

	for _, step := range steps {
		if step.Safe {
			b.WriteByte('?')
		}

		switch step.Kind {
		case StepIdentifier:
			b.WriteString(step.Identifier)
		case StepMember:
			b.WriteByte('.')
			b.WriteString(step.Property)
		case StepIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step.Index))
			b.WriteByte(']')
		}
	}

	return b.String()
}
