package explang

import (
	"testing"

	"github.com/shibukawa/snapparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Step
		wantErr bool
	}{
		{
			name:  "single identifier",
			input: "user",
			want: []Step{
				{Kind: StepIdentifier, Identifier: "user", Pos: defaultPos(0, 4)},
			},
		},
		{
			name:  "member and index",
			input: "users[0].profile",
			want: []Step{
				{Kind: StepIdentifier, Identifier: "users", Pos: defaultPos(0, 5)},
				{Kind: StepIndex, Index: 0, Pos: defaultPos(5, 3)},
				{Kind: StepMember, Property: "profile", Pos: defaultPos(8, 8)},
			},
		},
		{
			name:  "safe member and index",
			input: "order?.items?[10]",
			want: []Step{
				{Kind: StepIdentifier, Identifier: "order", Pos: defaultPos(0, 5)},
				{Kind: StepMember, Property: "items", Safe: true, Pos: defaultPos(5, 7)},
				{Kind: StepIndex, Index: 10, Safe: true, Pos: defaultPos(12, 5)},
			},
		},
		{
			name:  "whitespace between steps",
			input: " a . b [ 1 ] ",
			want: []Step{
				{Kind: StepIdentifier, Identifier: "a", Pos: defaultPos(1, 1)},
				{Kind: StepMember, Property: "b", Pos: defaultPos(3, 3)},
				{Kind: StepIndex, Index: 1, Pos: defaultPos(7, 5)},
			},
		},
		{
			name:  "non ascii identifiers count runes",
			input: "ユーザー.名前",
			want: []Step{
				{Kind: StepIdentifier, Identifier: "ユーザー", Pos: defaultPos(0, 4)},
				{Kind: StepMember, Property: "名前", Pos: defaultPos(4, 3)},
			},
		},
		{
			name:    "invalid start",
			input:   "1foo",
			wantErr: true,
		},
		{
			name:    "missing close bracket",
			input:   "users[0",
			wantErr: true,
		},
		{
			name:    "dangling safe",
			input:   "user?",
			wantErr: true,
		},
		{
			name:    "index overflows int",
			input:   "a[99999999999999999999999]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSteps(tt.input, 1, 1)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpression)
				assert.ErrorIs(t, err, snapparse.ErrParseFailed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSteps_WithBaseLineColumn(t *testing.T) {
	steps, err := ParseSteps("a.b", 3, 5)
	require.NoError(t, err)

	assert.Equal(t, []Step{
		{Kind: StepIdentifier, Identifier: "a", Pos: Position{Offset: 0, Line: 3, Column: 5, Length: 1}},
		{Kind: StepMember, Property: "b", Pos: Position{Offset: 1, Line: 3, Column: 6, Length: 2}},
	}, steps)
}

func TestParseSteps_ErrorMessage(t *testing.T) {
	_, err := ParseSteps("user?", 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one of '.', '[' at line 1 column 6")
}

func TestPath_Value(t *testing.T) {
	value, err := Path.Parse("a?.b")
	require.NoError(t, err)

	steps, ok := value.([]Step)
	require.True(t, ok)
	assert.Equal(t, "a?.b", FormatPath(steps))
}

func TestFormatPath(t *testing.T) {
	steps, err := ParseSteps(" order ?. items [ 2 ] . name", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "order?.items[2].name", FormatPath(steps))
}

func defaultPos(offset, length int) Position {
	return Position{Offset: offset, Line: 1, Column: offset + 1, Length: length}
}
