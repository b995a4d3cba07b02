package explang

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRoot     = errors.New("unknown root")
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotTraversable  = errors.New("value cannot be traversed")
	ErrNullDereference = errors.New("access on null value")
	ErrNoSteps         = errors.New("no access steps")
)

// ResolveError reports the step at which Resolve stopped.
type ResolveError struct {
	StepIndex int
	Step      Step
	Path      string
	Err       error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s at %q (line %d column %d)", e.Err, e.Path, e.Step.Pos.Line, e.Step.Pos.Column)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Resolve walks root along steps and returns the value found at the end.
//
// root must be a map[string]any holding the identifiers a path may start
// from. Objects are map[string]any and arrays []any, the shapes produced by
// the bundled grammars. A safe step (`?.` or `?[`) yields nil instead of an
// error when its receiver is nil, its field is missing or its index is out
// of range, and the rest of the path is skipped.
func Resolve(steps []Step, root any) (any, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	fail := func(idx int, err error) error {
		return &ResolveError{StepIndex: idx, Step: steps[idx], Path: FormatPath(steps[:idx+1]), Err: err}
	}

	roots, ok := root.(map[string]any)
	if !ok {
		return nil, fail(0, ErrNotTraversable)
	}

	current, ok := roots[steps[0].Identifier]
	if !ok {
		return nil, fail(0, ErrUnknownRoot)
	}

	for idx := 1; idx < len(steps); idx++ {
		step := steps[idx]

		if current == nil {
			if step.Safe {
				return nil, nil
			}

			return nil, fail(idx, ErrNullDereference)
		}

		var err error

		switch step.Kind {
		case StepMember:
			current, err = member(current, step.Property)
		case StepIndex:
			current, err = element(current, step.Index)
		default:
			err = ErrNotTraversable
		}

		if err != nil {
			if step.Safe && !errors.Is(err, ErrNotTraversable) {
				return nil, nil
			}

			return nil, fail(idx, err)
		}
	}

	return current, nil
}

func member(value any, property string) (any, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: member %q of %s", ErrNotTraversable, property, describe(value))
	}

	child, ok := object[property]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, property)
	}

	return child, nil
}

func element(value any, index int) (any, error) {
	array, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: index %d of %s", ErrNotTraversable, index, describe(value))
	}

	if index >= len(array) {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, len(array))
	}

	return array[index], nil
}

func describe(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
