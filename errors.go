package snapparse

import "errors"

// Construction errors. Combinators panic with an error wrapping one of these
// when they are built with malformed arguments, the same way
// regexp.MustCompile does for a bad expression.
var (
	// ErrNilParser is reported when a nil *Parser is passed where a parser is required.
	ErrNilParser = errors.New("not a parser")
	// ErrNilFunction is reported when a nil function is passed where a function is required.
	ErrNilFunction = errors.New("not a function")
	// ErrNotFunctionValue is reported by Ap when the applied value is not a func(any) any.
	ErrNotFunctionValue = errors.New("parsed value is not a function")
	// ErrInvalidPattern indicates a regular expression that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrUnsupportedFlag indicates a pattern flag that would make matching stateful, or an unknown flag.
	ErrUnsupportedFlag = errors.New("unsupported pattern flag")
	// ErrInvalidGroup indicates a capture group number the pattern does not define.
	ErrInvalidGroup = errors.New("invalid capture group")
	// ErrInvalidRepeat indicates repetition bounds that are negative or inverted.
	ErrInvalidRepeat = errors.New("invalid repetition bounds")
)

// ErrParseFailed is wrapped by every *ParseError returned from Parse.
var ErrParseFailed = errors.New("parse failed")

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")
