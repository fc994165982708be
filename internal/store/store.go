package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed keys the two collections are persisted under.
const (
	KeyUsers   = "userList"
	KeyPrompts = "promptList"
)

// KV is the durable key-value store the collections write through to.
//
// Values are opaque bytes (callers store JSON). Get reports ok=false for an absent key.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

type Backend string

const (
	BackendAuto   Backend = ""
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
	BackendMemory Backend = "memory"
)

// ParseBackend normalizes a user-provided backend name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case string(BackendSQLite):
		return BackendSQLite, nil
	case string(BackendJSON):
		return BackendJSON, nil
	case string(BackendMemory):
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (want sqlite|json|memory)", s)
	}
}

// Store is a data directory holding the persisted collections and TUI state.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: empty dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Open returns the KV for this store using the given backend.
func (s Store) Open(ctx context.Context, backend Backend) (KV, error) {
	if backend == BackendMemory {
		return NewMemory(), nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	if backend == BackendAuto {
		backend = s.DetectBackend()
	}
	switch backend {
	case BackendSQLite:
		kv, err := openSQLiteKV(ctx, s.sqlitePath())
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendJSON:
		return newJSONKV(s.Dir), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

// DetectBackend picks the backend already in use in this directory.
//
// An existing SQLite file wins; otherwise any per-key JSON file selects the JSON backend.
// A fresh directory defaults to SQLite.
func (s Store) DetectBackend() Backend {
	if _, err := os.Stat(s.sqlitePath()); err == nil {
		return BackendSQLite
	}
	for _, key := range []string{KeyUsers, KeyPrompts} {
		if _, err := os.Stat(jsonKeyPath(s.Dir, key)); err == nil {
			return BackendJSON
		}
	}
	return BackendSQLite
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// DefaultDataDir is the data directory used when neither --dir nor config sets one.
func DefaultDataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func getenv(k string) string { return os.Getenv(k) }
