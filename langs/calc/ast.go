package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrNonIntegerExponent  = errors.New("exponent must be an integer")
	ErrExponentTooLarge    = errors.New("exponent too large")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// maxExponent bounds the magnitude of `^` exponents.
const maxExponent = 1 << 16

// Expr is a node of a parsed arithmetic expression.
type Expr interface {
	Eval() (decimal.Decimal, error)
	// String renders the expression fully parenthesized.
	String() string
}

// Number is a literal.
type Number struct {
	Value decimal.Decimal
}

func (n *Number) Eval() (decimal.Decimal, error) {
	return n.Value, nil
}

func (n *Number) String() string {
	return n.Value.String()
}

// Negate is unary minus.
type Negate struct {
	Offset  int
	Operand Expr
}

func (n *Negate) Eval() (decimal.Decimal, error) {
	v, err := n.Operand.Eval()
	if err != nil {
		return decimal.Zero, err
	}

	return v.Neg(), nil
}

func (n *Negate) String() string {
	return "(-" + n.Operand.String() + ")"
}

// Binary is an infix operation. Offset is the byte offset of the operator.
type Binary struct {
	Offset int
	Op     string
	Left   Expr
	Right  Expr
}

func (b *Binary) Eval() (decimal.Decimal, error) {
	left, err := b.Left.Eval()
	if err != nil {
		return decimal.Zero, err
	}

	right, err := b.Right.Eval()
	if err != nil {
		return decimal.Zero, err
	}

	switch b.Op {
	case "+":
		return left.Add(right), nil
	case "-":
		return left.Sub(right), nil
	case "*":
		return left.Mul(right), nil
	case "/":
		if right.IsZero() {
			return decimal.Zero, b.errorf(ErrDivisionByZero)
		}

		return left.Div(right), nil
	case "%":
		if right.IsZero() {
			return decimal.Zero, b.errorf(ErrDivisionByZero)
		}

		return left.Mod(right), nil
	case "^":
		return b.power(left, right)
	default:
		return decimal.Zero, b.errorf(ErrUnsupportedOperator)
	}
}

func (b *Binary) power(base, exponent decimal.Decimal) (decimal.Decimal, error) {
	if !exponent.IsInteger() {
		return decimal.Zero, b.errorf(ErrNonIntegerExponent)
	}

	if exponent.Abs().GreaterThan(decimal.NewFromInt(maxExponent)) {
		return decimal.Zero, b.errorf(ErrExponentTooLarge)
	}

	n := exponent.IntPart()
	negative := n < 0

	if negative {
		if base.IsZero() {
			return decimal.Zero, b.errorf(ErrDivisionByZero)
		}

		n = -n
	}

	result := decimal.NewFromInt(1)
	for square := base; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(square)
		}

		square = square.Mul(square)
	}

	if negative {
		return decimal.NewFromInt(1).Div(result), nil
	}

	return result, nil
}

func (b *Binary) errorf(err error) error {
	return fmt.Errorf("%w: '%s' at offset %d", err, b.Op, b.Offset)
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}
