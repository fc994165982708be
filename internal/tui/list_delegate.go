package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowDelegate renders one-line rows; the cursor row is highlighted across the full width.
type rowDelegate struct {
	normal   lipgloss.Style
	cursor   lipgloss.Style
	inactive lipgloss.Style
	focused  *bool
}

func newRowDelegate(focused *bool) rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		cursor: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		inactive: lipgloss.NewStyle().
			Background(colorSelectedBg),
		focused: focused,
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.inactive
		if d.focused == nil || *d.focused {
			style = d.cursor
		}
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}
	fmt.Fprint(w, style.Render(fitWidth(strings.ReplaceAll(txt, "\n", " "), contentW)))
}

func newList(items []list.Item, focused *bool) list.Model {
	l := list.New(items, newRowDelegate(focused), 0, 0)
	// The app renders its own pane titles and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	// Esc means "cancel" here and q is handled by the app.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	// Emacs-style navigation aliases.
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	// d deletes rows, so it must not page.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	return l
}
