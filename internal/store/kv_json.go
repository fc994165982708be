package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// jsonKV keeps one <key>.json file per key, written with an atomic rename.
type jsonKV struct {
	dir string
}

func newJSONKV(dir string) *jsonKV {
	return &jsonKV{dir: dir}
}

func jsonKeyPath(dir, key string) string {
	return filepath.Join(dir, key+".json")
}

func (s *jsonKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(jsonKeyPath(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *jsonKV) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(s.dir, key+".json.*.tmp", jsonKeyPath(s.dir, key), value, 0o644)
}

func (s *jsonKV) Close() error { return nil }
