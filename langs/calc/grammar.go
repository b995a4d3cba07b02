// Package calc parses and evaluates arithmetic expressions with exact
// decimal results.
//
// Precedence from loosest to tightest: `+ -`, `* / %`, unary `-`, `^`.
// `^` is right associative and takes an integer exponent, so `-2^2` is -4
// and `2^3^2` is 512. Division keeps decimal.DivisionPrecision digits.
package calc

import (
	"fmt"

	"github.com/shibukawa/snapparse"
	"github.com/shopspring/decimal"
)

// Expression parses a complete expression into an Expr.
var Expression = newGrammar()

// Parse parses input into an expression tree.
func Parse(input string) (Expr, error) {
	value, err := Expression.Parse(input)
	if err != nil {
		return nil, err
	}

	return value.(Expr), nil
}

// Evaluate parses and evaluates input.
func Evaluate(input string) (decimal.Decimal, error) {
	expr, err := Parse(input)
	if err != nil {
		return decimal.Zero, err
	}

	return expr.Eval()
}

// Eval evaluates a value produced by Expression.
func Eval(value any) (any, error) {
	expr, ok := value.(Expr)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an expression", ErrUnsupportedOperator, value)
	}

	return expr.Eval()
}

func token(p *snapparse.Parser) *snapparse.Parser {
	return p.Skip(snapparse.OptWhitespace)
}

func operator(symbols ...string) *snapparse.Parser {
	alternatives := make([]*snapparse.Parser, len(symbols))
	for i, s := range symbols {
		alternatives[i] = snapparse.String(s)
	}

	return token(snapparse.Alt(alternatives...))
}

// leftAssociative folds `operand (op operand)*` into a left leaning tree.
func leftAssociative(operand, op *snapparse.Parser) *snapparse.Parser {
	return snapparse.SeqMap(func(values ...any) any {
		left := values[0].(Expr)

		for _, raw := range values[1].([]any) {
			step := raw.([]any)
			left = &Binary{Offset: step[0].(int), Op: step[1].(string), Left: left, Right: step[2].(Expr)}
		}

		return left
	}, operand, snapparse.Seq(snapparse.Index, op, operand).Many())
}

func newGrammar() *snapparse.Parser {
	var expr, unary *snapparse.Parser

	exprRef := snapparse.LazyDesc("an expression", func() *snapparse.Parser { return expr })
	unaryRef := snapparse.Lazy(func() *snapparse.Parser { return unary })

	number := token(snapparse.Pattern(`[0-9]+(?:\.[0-9]+)?`)).
		Map(func(v any) any {
			return &Number{Value: decimal.RequireFromString(v.(string))}
		}).
		Desc("a number")

	group := token(snapparse.String("(")).Then(exprRef).Skip(token(snapparse.String(")")))
	primary := snapparse.Alt(number, group)

	power := snapparse.SeqMap(func(values ...any) any {
		base := values[0].(Expr)

		tail := values[1].([]any)
		if len(tail) == 0 {
			return base
		}

		step := tail[0].([]any)

		return &Binary{Offset: step[0].(int), Op: "^", Left: base, Right: step[2].(Expr)}
	}, primary, snapparse.Seq(snapparse.Index, operator("^"), unaryRef).AtMost(1))

	unary = snapparse.Alt(
		snapparse.SeqMap(func(values ...any) any {
			return &Negate{Offset: values[0].(int), Operand: values[2].(Expr)}
		}, snapparse.Index, operator("-"), unaryRef),
		power,
	)

	multiplicative := leftAssociative(unaryRef, operator("*", "/", "%"))
	expr = leftAssociative(multiplicative, operator("+", "-"))

	return snapparse.OptWhitespace.Then(exprRef)
}
