package session

import (
	"context"
	"encoding/json"
	"fmt"

	"whisperdeck/internal/mutate"
	"whisperdeck/internal/store"

	"go.uber.org/zap"
)

// Collection is an ordered list persisted under a fixed key.
//
// Every action except load is written through to the KV before it is committed; if the
// write fails the in-memory list is left unchanged.
type Collection[T any] struct {
	key    string
	kv     store.KV
	items  []T
	logger *zap.Logger
}

// NewCollection returns a collection holding a copy of initial, persisted under key.
func NewCollection[T any](key string, kv store.KV, initial []T, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	items := make([]T, len(initial))
	copy(items, initial)
	return &Collection[T]{
		key:    key,
		kv:     kv,
		items:  items,
		logger: logger.With(zap.String("key", key)),
	}
}

// Key is the KV key the collection is written to.
func (c *Collection[T]) Key() string { return c.key }

// Len is the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// At returns element i, or ok=false when i is out of range.
func (c *Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Apply reduces the list with a and commits the result.
func (c *Collection[T]) Apply(ctx context.Context, a mutate.Action[T]) error {
	next, err := mutate.Reduce(c.items, a)
	if err != nil {
		return fmt.Errorf("%s: %w", c.key, err)
	}
	if a.Persists() {
		if err := c.persist(ctx, next); err != nil {
			// The error is returned to the caller, which reports it.
			c.logger.Debug("persist failed; change not applied", zap.String("action", a.Name()), zap.Error(err))
			return err
		}
	}
	c.items = next
	c.logger.Debug("collection updated", zap.String("action", a.Name()), zap.Int("index", a.Index()), zap.Int("len", len(next)))
	return nil
}

// Replace writes xs as the new persisted value and loads it.
func (c *Collection[T]) Replace(ctx context.Context, xs []T) error {
	if xs == nil {
		xs = []T{}
	}
	if err := c.persist(ctx, xs); err != nil {
		return err
	}
	return c.Apply(ctx, mutate.Load(xs))
}

// Hydrate loads the persisted value when there is one. An absent, malformed or empty value
// keeps the current list; only a read error is returned.
func (c *Collection[T]) Hydrate(ctx context.Context) (bool, error) {
	b, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok {
		c.logger.Debug("no saved data")
		return false, nil
	}
	var xs []T
	if err := json.Unmarshal(b, &xs); err != nil {
		c.logger.Debug("ignoring malformed saved data", zap.Error(err))
		return false, nil
	}
	if len(xs) == 0 {
		c.logger.Debug("saved data is empty; keeping default")
		return false, nil
	}
	if err := c.Apply(ctx, mutate.Load(xs)); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) persist(ctx context.Context, xs []T) error {
	b, err := json.Marshal(xs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, b); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
