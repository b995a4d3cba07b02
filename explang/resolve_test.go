package explang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := map[string]any{
		"order": map[string]any{
			"id": float64(7),
			"items": []any{
				map[string]any{"name": "pen"},
				map[string]any{"name": "ink", "note": nil},
			},
			"customer": nil,
		},
	}

	tests := []struct {
		name    string
		path    string
		want    any
		wantErr error
	}{
		{name: "root", path: "order.id", want: float64(7)},
		{name: "index then member", path: "order.items[1].name", want: "ink"},
		{name: "explicit null value", path: "order.items[1].note", want: nil},
		{name: "safe on null receiver", path: "order.customer?.name", want: nil},
		{name: "safe missing field", path: "order?.missing", want: nil},
		{name: "safe out of range", path: "order.items?[5].name", want: nil},
		{name: "unknown root", path: "user", wantErr: ErrUnknownRoot},
		{name: "unknown field", path: "order.missing", wantErr: ErrUnknownField},
		{name: "out of range", path: "order.items[2]", wantErr: ErrIndexOutOfRange},
		{name: "null dereference", path: "order.customer.name", wantErr: ErrNullDereference},
		{name: "member of array", path: "order.items.name", wantErr: ErrNotTraversable},
		{name: "safe does not hide type errors", path: "order.id?.value", wantErr: ErrNotTraversable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParseSteps(tt.path, 1, 1)
			require.NoError(t, err)

			got, err := Resolve(steps, root)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ErrorLocation(t *testing.T) {
	steps, err := ParseSteps("a.b.c", 1, 1)
	require.NoError(t, err)

	_, err = Resolve(steps, map[string]any{"a": map[string]any{"b": map[string]any{}}})

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, 2, resolveErr.StepIndex)
	assert.Equal(t, "a.b.c", resolveErr.Path)
	assert.Equal(t, 4, resolveErr.Step.Pos.Column)
}

func TestResolve_RequiresObjectRoot(t *testing.T) {
	steps, err := ParseSteps("a", 1, 1)
	require.NoError(t, err)

	_, err = Resolve(steps, []any{1})
	assert.ErrorIs(t, err, ErrNotTraversable)

	_, err = Resolve(nil, map[string]any{})
	assert.ErrorIs(t, err, ErrNoSteps)
}
