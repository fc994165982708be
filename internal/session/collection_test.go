package session

import (
	"context"
	"errors"
	"testing"

	"whisperdeck/internal/model"
	"whisperdeck/internal/mutate"
	"whisperdeck/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCollection_WriteThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	c := NewCollection(store.KeyPrompts, kv, model.DefaultPrompts(), zaptest.NewLogger(t))

	steps := []mutate.Action[model.Prompt]{
		mutate.Add(model.Prompt{Short: "Greet", Full: "hi"}),
		mutate.Modify(0, model.Prompt{Short: "Blank!", Full: ""}),
		mutate.Add(model.Prompt{Short: "Bye", Full: "cya"}),
		mutate.Remove[model.Prompt](1),
	}
	for _, a := range steps {
		require.NoError(t, c.Apply(ctx, a), a.Name())
		got, ok := persisted[[]model.Prompt](t, kv, store.KeyPrompts)
		require.True(t, ok, "expected %s to persist", a.Name())
		assert.Equal(t, c.Items(), got, "persisted copy must equal in-memory after %s", a.Name())
	}
	assert.Equal(t, []model.Prompt{{Short: "Blank!"}, {Short: "Bye", Full: "cya"}}, c.Items())
}

func TestCollection_LoadDoesNotPersist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	c := NewCollection(store.KeyUsers, kv, model.DefaultUsers(), nil)

	require.NoError(t, c.Apply(ctx, mutate.Load([]model.User{{Name: "a"}})))
	assert.Equal(t, []model.User{{Name: "a"}}, c.Items())
	assert.Equal(t, 0, kv.Puts())
}

func TestCollection_FailedPersistLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	c := NewCollection(store.KeyUsers, kv, model.DefaultUsers(), zaptest.NewLogger(t))
	require.NoError(t, c.Apply(ctx, mutate.Add(model.User{Name: "alice"})))

	diskFull := errors.New("disk full")
	kv.FailPuts(diskFull)
	err := c.Apply(ctx, mutate.Add(model.User{Name: "bob"}))
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, []model.User{{Name: "alice"}}, c.Items())

	got, _ := persisted[[]model.User](t, kv, store.KeyUsers)
	assert.Equal(t, []model.User{{Name: "alice"}}, got)
}

func TestCollection_OutOfRangeWrapsKey(t *testing.T) {
	t.Parallel()

	c := NewCollection(store.KeyUsers, store.NewMemory(), model.DefaultUsers(), nil)
	err := c.Apply(context.Background(), mutate.Remove[model.User](0))
	require.ErrorIs(t, err, mutate.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), store.KeyUsers)
}

func TestCollection_Hydrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        *string
		wantLoaded bool
		want       []model.Prompt
	}{
		{name: "absent keeps default", raw: nil, want: model.DefaultPrompts()},
		{name: "malformed keeps default", raw: strPtr(`{"short":`), want: model.DefaultPrompts()},
		{name: "wrong shape keeps default", raw: strPtr(`{"short":"x"}`), want: model.DefaultPrompts()},
		{name: "empty keeps default", raw: strPtr(`[]`), want: model.DefaultPrompts()},
		{name: "null keeps default", raw: strPtr(`null`), want: model.DefaultPrompts()},
		{
			name:       "saved replaces default",
			raw:        strPtr(`[{"short":"A","full":"a"},{"short":"B","full":""}]`),
			wantLoaded: true,
			want:       []model.Prompt{{Short: "A", Full: "a"}, {Short: "B"}},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := store.NewMemory()
			if tc.raw != nil {
				require.NoError(t, kv.Put(ctx, store.KeyPrompts, []byte(*tc.raw)))
			}
			c := NewCollection(store.KeyPrompts, kv, model.DefaultPrompts(), zaptest.NewLogger(t))
			loaded, err := c.Hydrate(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLoaded, loaded)
			assert.Equal(t, tc.want, c.Items())
		})
	}
}

func TestCollection_HydrateTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := store.NewMemory()
	seed(t, kv, store.KeyUsers, []model.User{{Name: "a", Prompt: &model.Prompt{Short: "X", Full: "f"}}})

	c := NewCollection(store.KeyUsers, kv, model.DefaultUsers(), nil)
	_, err := c.Hydrate(ctx)
	require.NoError(t, err)
	first := c.Items()
	_, err = c.Hydrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, c.Items())
	assert.Equal(t, 1, kv.Puts(), "hydration must not write")
}

func TestCollection_ItemsIsACopy(t *testing.T) {
	t.Parallel()

	c := NewCollection(store.KeyPrompts, store.NewMemory(), model.DefaultPrompts(), nil)
	xs := c.Items()
	xs[0].Short = "mutated"
	p, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, model.DefaultPromptShort, p.Short)

	_, ok = c.At(1)
	assert.False(t, ok)
}

func strPtr(s string) *string { return &s }
