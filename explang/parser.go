package explang

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/shibukawa/snapparse"
)

// ErrInvalidExpression indicates that an expression string could not be parsed.
var ErrInvalidExpression = errors.New("explang: invalid expression")

type stepBody struct {
	kind     StepKind
	property string
	index    int
}

var (
	ws = snapparse.OptWhitespace

	identifier = snapparse.Pattern(`[\p{L}_][\p{L}_\p{Nd}]*`).Desc("identifier")

	index = snapparse.Pattern(`[0-9]+`).Desc("integer index").Chain(func(v any) *snapparse.Parser {
		n, err := strconv.Atoi(v.(string))
		if err != nil {
			return snapparse.Fail("an index that fits in int")
		}

		return snapparse.Succeed(n)
	})

	safeMarker = snapparse.Alt(
		snapparse.String("?").Skip(ws).Result(true),
		snapparse.Succeed(false),
	)

	memberBody = snapparse.String(".").Then(ws).Then(identifier).Map(func(v any) any {
		return stepBody{kind: StepMember, property: v.(string)}
	})

	indexBody = snapparse.SeqMap(func(values ...any) any {
		return stepBody{kind: StepIndex, index: values[2].(int)}
	}, snapparse.String("["), ws, index, ws, snapparse.String("]"))

	rootStep   = snapparse.Seq(snapparse.Index, identifier, snapparse.Index)
	accessStep = snapparse.Seq(snapparse.Index, safeMarker, snapparse.Alt(memberBody, indexBody), snapparse.Index)

	rawPath = snapparse.Seq(ws.Then(rootStep), ws.Then(accessStep).Many()).Skip(ws)

	// Path parses a complete access path such as `order?.items[0].name`.
	// Its value is the []Step of the path, positioned from line 1 column 1
	// of the input.
	Path = snapparse.Custom(func(input string, i int) snapparse.Result {
		result := rawPath.Run(input, i)
		if result.Status {
			result.Value = newLocator(input, 1, 1).steps(result.Value)
		}

		return result
	})
)

// ParseSteps parses an explang expression into a flattened list of access steps.
// startLine/startColumn allow callers to provide the 1-based location of the
// first rune of expr within a larger document, so Position metadata remains accurate.
func ParseSteps(expr string, startLine, startColumn int) ([]Step, error) {
	value, err := rawPath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	return newLocator(expr, startLine, startColumn).steps(value), nil
}

// locator converts the byte offsets reported by the grammar into rune based
// positions relative to a base line and column.
type locator struct {
	src        string
	baseLine   int
	baseColumn int
}

func newLocator(src string, startLine, startColumn int) locator {
	if startLine < 1 {
		startLine = 1
	}

	if startColumn < 1 {
		startColumn = 1
	}

	return locator{src: src, baseLine: startLine, baseColumn: startColumn}
}

func (l locator) steps(value any) []Step {
	parts := value.([]any)
	root := parts[0].([]any)
	access := parts[1].([]any)

	steps := make([]Step, 0, 1+len(access))
	steps = append(steps, Step{
		Kind:       StepIdentifier,
		Identifier: root[1].(string),
		Pos:        l.makePosition(root[0].(int), root[2].(int)),
	})

	for _, raw := range access {
		fields := raw.([]any)
		body := fields[2].(stepBody)

		steps = append(steps, Step{
			Kind:     body.kind,
			Property: body.property,
			Index:    body.index,
			Safe:     fields[1].(bool),
			Pos:      l.makePosition(fields[0].(int), fields[3].(int)),
		})
	}

	return steps
}

func (l locator) makePosition(start, end int) Position {
	pos := l.positionAt(start)
	pos.Length = utf8.RuneCountInString(l.src[start:end])

	return pos
}

func (l locator) positionAt(offset int) Position {
	offset = max(0, min(offset, len(l.src)))

	line := l.baseLine
	col := l.baseColumn
	runes := 0

	for _, r := range l.src[:offset] {
		runes++

		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return Position{Offset: runes, Line: line, Column: col}
}
