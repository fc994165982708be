package tui

import (
	"errors"
	"strings"

	"whisperdeck/internal/clip"
	"whisperdeck/internal/model"
	"whisperdeck/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case copyResultMsg:
		var cmd tea.Cmd
		switch {
		case msg.Err == nil:
			cmd = m.setStatus("Copied whisper for "+displayName(msg.Name), false)
		case errors.Is(msg.Err, clip.ErrDisabled):
			cmd = m.setStatus("Clipboard disabled", false)
		default:
			cmd = m.setStatus("Copy failed: "+msg.Err.Error(), true)
		}
		return m, tea.Batch(cmd, m.waitForCopy())

	case statusDoneMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.focus {
		case focusNewUser:
			return m.updateNewUser(msg)
		case focusNewPrompt:
			return m.updateNewPrompt(msg)
		case focusRowEdit:
			return m.updateRowEdit(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *appModel) quit() tea.Cmd {
	m.saveState()
	return tea.Quit
}

func (m *appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.quit()
	case "tab", "shift+tab":
		if m.pane == paneUsers {
			m.setPane(panePrompts)
		} else {
			m.setPane(paneUsers)
		}
		return m, nil
	case "r":
		if err := m.session.Reload(m.ctx); err != nil {
			return m, m.setError(err)
		}
		m.refresh()
		return m, m.setStatus("Reloaded", false)
	case "p":
		m.hidePreview = !m.hidePreview
		m.resize()
		return m, nil
	case "a", "n":
		if m.pane == paneUsers {
			m.focus = focusNewUser
			return m, m.newUser.Focus()
		}
		m.focus = focusNewPrompt
		m.newFull.Blur()
		return m, m.newShort.Focus()
	}

	if m.pane == paneUsers {
		switch msg.String() {
		case "enter", " ":
			return m, m.selectHighlightedUser()
		case "x", "d", "delete":
			return m, m.deleteHighlightedUser()
		}
		var cmd tea.Cmd
		m.usersList, cmd = m.usersList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter", " ":
		return m, m.chooseHighlightedPrompt()
	case "e":
		it, ok := m.highlightedPrompt()
		if !ok {
			return m, nil
		}
		m.row = session.PromptRow{Index: it.index}
		m.row.Edit(it.prompt)
		m.editShort.SetValue(m.row.Short)
		m.editFull.SetValue(m.row.Full)
		m.editFull.Blur()
		m.focus = focusRowEdit
		m.refresh()
		return m, m.editShort.Focus()
	case "x", "d", "delete":
		return m, m.deleteHighlightedPrompt()
	}
	var cmd tea.Cmd
	m.promptsList, cmd = m.promptsList.Update(msg)
	return m, cmd
}

// selectHighlightedUser selects the user under the cursor; the leading Empty row unselects.
func (m *appModel) selectHighlightedUser() tea.Cmd {
	sel := session.None
	if it, ok := m.usersList.SelectedItem().(userItem); ok {
		sel = session.At(it.index)
	}
	if err := m.session.SelectUser(sel); err != nil {
		return m.setError(err)
	}
	m.refresh()
	if sel.IsNone() {
		return m.setStatus("No user selected", false)
	}
	return nil
}

func (m *appModel) deleteHighlightedUser() tea.Cmd {
	it, ok := m.usersList.SelectedItem().(userItem)
	if !ok {
		return nil
	}
	if err := m.session.RemoveUser(m.ctx, it.index); err != nil {
		return m.setError(err)
	}
	m.refresh()
	return m.setStatus("Removed "+displayName(it.user.Name), false)
}

func (m *appModel) chooseHighlightedPrompt() tea.Cmd {
	it, ok := m.highlightedPrompt()
	if !ok {
		return nil
	}
	if m.session.SelectedUser().IsNone() {
		return m.setStatus("Select a user first", false)
	}
	row := session.PromptRow{Index: it.index}
	if err := row.Choose(m.ctx, m.session); err != nil {
		return m.setError(err)
	}
	m.refresh()
	return m.setStatus("Assigned "+it.prompt.Short, false)
}

func (m *appModel) deleteHighlightedPrompt() tea.Cmd {
	it, ok := m.highlightedPrompt()
	if !ok {
		return nil
	}
	// The action is hidden on the last prompt.
	if !m.session.CanDeletePrompt() {
		return nil
	}
	row := session.PromptRow{Index: it.index}
	if err := row.Delete(m.ctx, m.session); err != nil {
		return m.setError(err)
	}
	m.refresh()
	return m.setStatus("Deleted "+it.prompt.Short, false)
}

func (m *appModel) updateNewUser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.newUser.Blur()
		m.focus = focusList
		return m, nil
	case "enter":
		name := m.newUser.Value()
		if err := m.session.AddUser(m.ctx, name); err != nil {
			return m, m.setError(err)
		}
		m.newUser.Reset()
		m.refresh()
		m.logger.Debug("added user", zap.String("name", name))
		return m, m.setStatus("Added "+displayName(name), false)
	}
	var cmd tea.Cmd
	m.newUser, cmd = m.newUser.Update(msg)
	return m, cmd
}

func (m *appModel) updateNewPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.newShort.Blur()
		m.newFull.Blur()
		m.focus = focusList
		return m, nil
	case "tab", "shift+tab":
		return m, toggleFields(&m.newShort, &m.newFull)
	case "enter":
		if m.newShort.Focused() {
			m.newShort.Blur()
			return m, m.newFull.Focus()
		}
		return m, m.addPrompt()
	case "ctrl+s":
		return m, m.addPrompt()
	}
	var cmd tea.Cmd
	if m.newShort.Focused() {
		m.newShort, cmd = m.newShort.Update(msg)
	} else {
		m.newFull, cmd = m.newFull.Update(msg)
	}
	return m, cmd
}

func (m *appModel) addPrompt() tea.Cmd {
	short := m.newShort.Value()
	if strings.TrimSpace(short) == "" {
		return m.setStatus("A prompt needs a short name", true)
	}
	if err := m.session.AddPrompt(m.ctx, model.Prompt{Short: short, Full: m.newFull.Value()}); err != nil {
		return m.setError(err)
	}
	m.newShort.Reset()
	m.newFull.Reset()
	m.newFull.Blur()
	m.refresh()
	return tea.Batch(m.setStatus("Added prompt "+short, false), m.newShort.Focus())
}

func (m *appModel) updateRowEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.row.Cancel()
		m.endRowEdit()
		return m, nil
	case "tab", "shift+tab":
		return m, toggleFields(&m.editShort, &m.editFull)
	case "enter":
		m.row.Short = m.editShort.Value()
		m.row.Full = m.editFull.Value()
		if err := m.row.Save(m.ctx, m.session); err != nil {
			// The row stays in edit mode so nothing typed is lost.
			return m, m.setError(err)
		}
		m.endRowEdit()
		return m, m.setStatus("Saved "+m.editShort.Value(), false)
	}
	var cmd tea.Cmd
	if m.editShort.Focused() {
		m.editShort, cmd = m.editShort.Update(msg)
	} else {
		m.editFull, cmd = m.editFull.Update(msg)
	}
	return m, cmd
}

func (m *appModel) endRowEdit() {
	m.editShort.Blur()
	m.editFull.Blur()
	m.focus = focusList
	m.refresh()
}
