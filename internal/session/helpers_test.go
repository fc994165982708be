package session

import (
	"context"
	"encoding/json"
	"testing"

	"whisperdeck/internal/clip"
	"whisperdeck/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	kv   *store.Memory
	clip *clip.Memory
	s    *Session
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := store.NewMemory()
	cb := &clip.Memory{}
	s := New(kv, cb, zaptest.NewLogger(t))
	t.Cleanup(s.Wait)
	return fixture{kv: kv, clip: cb, s: s}
}

// persisted decodes the stored value for key into a fresh T.
func persisted[T any](t *testing.T, kv store.KV, key string) (T, bool) {
	t.Helper()
	var out T
	b, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	if !ok {
		return out, false
	}
	require.NoError(t, json.Unmarshal(b, &out))
	return out, true
}

func seed(t *testing.T, kv store.KV, key string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, kv.Put(context.Background(), key, b))
}

// failingGetKV is a Memory whose reads always fail.
type failingGetKV struct {
	*store.Memory
	err error
}

func (k failingGetKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, k.err }
