package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(no name)"
	}
	return name
}

// toggleFields moves focus between a pair of inputs.
func toggleFields(a, b *textinput.Model) tea.Cmd {
	if a.Focused() {
		a.Blur()
		return b.Focus()
	}
	b.Blur()
	return a.Focus()
}
