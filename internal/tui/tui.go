package tui

import (
	"context"

	"whisperdeck/internal/session"
	"whisperdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	// Theme is the configured palette (light|dark|auto); env overrides it.
	Theme string

	Logger *zap.Logger
}

// Run starts the interactive TUI over s. TUI state (pane, cursors) is read from and saved
// to st; a Store with an empty Dir keeps nothing.
func Run(ctx context.Context, s *session.Session, st store.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(ctx, s, st, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
