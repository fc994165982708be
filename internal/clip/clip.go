// Package clip writes composed whisper text to the user's clipboard.
package clip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(ctx context.Context, s string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, s string) error

func (f WriterFunc) WriteText(ctx context.Context, s string) error { return f(ctx, s) }

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeSystem Mode = "system"
	ModeOSC52  Mode = "osc52"
	ModeNone   Mode = "none"
)

// ErrDisabled is returned by the writer built for ModeNone.
var ErrDisabled = errors.New("clipboard disabled")

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeAuto):
		return ModeAuto, nil
	case string(ModeSystem):
		return ModeSystem, nil
	case string(ModeOSC52):
		return ModeOSC52, nil
	case string(ModeNone):
		return ModeNone, nil
	default:
		return "", fmt.Errorf("unknown clipboard mode: %s (want auto|system|osc52|none)", s)
	}
}

// New builds the writer for mode.
func New(mode Mode) Writer {
	switch mode {
	case ModeSystem:
		return System{}
	case ModeOSC52:
		return NewOSC52(nil)
	case ModeNone:
		return WriterFunc(func(context.Context, string) error { return ErrDisabled })
	default:
		return Chain{System{}, NewOSC52(nil)}
	}
}

// Chain tries each writer in order and returns nil on the first success.
type Chain []Writer

func (c Chain) WriteText(ctx context.Context, s string) error {
	var errs []error
	for _, w := range c {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := w.WriteText(ctx, s)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("clipboard: no writers")
	}
	return errors.Join(errs...)
}

// Memory records every write. It backs --ephemeral runs and tests.
type Memory struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (m *Memory) WriteText(_ context.Context, s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, s)
	return nil
}

// Fail makes subsequent writes return err (nil restores success).
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Writes returns a copy of all successful writes, oldest first.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// Last returns the most recent successful write.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}
