package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whisperdeck/internal/session"
	"whisperdeck/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type pane int

const (
	paneUsers pane = iota
	panePrompts
)

func (p pane) String() string {
	if p == panePrompts {
		return "prompts"
	}
	return "users"
}

// focus is the widget receiving keys.
type focus int

const (
	focusList focus = iota
	focusNewUser
	focusNewPrompt
	focusRowEdit
)

const statusTTL = 4 * time.Second

type copyResultMsg session.CopyResult

type statusDoneMsg struct{ seq int }

type appModel struct {
	ctx     context.Context
	session *session.Session
	store   store.Store
	logger  *zap.Logger
	theme   string

	// copies receives clipboard results from the session's background writes.
	copies chan session.CopyResult

	width  int
	height int

	pane  pane
	focus focus

	usersFocused   bool
	promptsFocused bool
	usersList      list.Model
	promptsList    list.Model

	newUser textinput.Model

	newShort textinput.Model
	newFull  textinput.Model

	// row is the prompt row in edit mode (focusRowEdit); editShort/editFull are its buffers.
	row       session.PromptRow
	editShort textinput.Model
	editFull  textinput.Model

	hidePreview bool

	status    string
	statusErr bool
	statusSeq int
}

func newAppModel(ctx context.Context, s *session.Session, st store.Store, opts Options) *appModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &appModel{
		ctx:     ctx,
		session: s,
		store:   st,
		logger:  logger,
		theme:   opts.Theme,
		copies:  make(chan session.CopyResult, 16),
		width:   80,
		height:  24,
	}
	s.OnCopy = func(r session.CopyResult) {
		// Never block the writer goroutine; a dropped result only loses a status message.
		select {
		case m.copies <- r:
		default:
		}
	}

	m.usersList = newList(nil, &m.usersFocused)
	m.promptsList = newList(nil, &m.promptsFocused)

	m.newUser = newInput("name")
	m.newShort = newInput("short")
	m.newFull = newInput("full text")
	m.editShort = newInput("short")
	m.editFull = newInput("full text")

	m.refresh()
	m.restoreState()
	m.setPane(m.pane)
	m.resize()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 0
	return ti
}

func (m *appModel) Init() tea.Cmd { return m.waitForCopy() }

// waitForCopy delivers the next clipboard result as a message.
func (m *appModel) waitForCopy() tea.Cmd {
	ch := m.copies
	return func() tea.Msg {
		return copyResultMsg(<-ch)
	}
}

func (m *appModel) setPane(p pane) {
	m.pane = p
	m.usersFocused = p == paneUsers
	m.promptsFocused = p == panePrompts
}

// refresh rebuilds both lists from the session, keeping cursor positions.
func (m *appModel) refresh() {
	selUser := m.session.SelectedUser()
	users := m.session.Users()
	uItems := make([]list.Item, 0, len(users)+1)
	uItems = append(uItems, emptyUserItem{selected: selUser.IsNone()})
	for i, u := range users {
		uItems = append(uItems, userItem{index: i, user: u, selected: selUser.Is(i)})
	}
	uCur := m.usersList.Index()
	m.usersList.SetItems(uItems)
	m.usersList.Select(clamp(uCur, 0, len(uItems)-1))

	selPrompt := m.session.SelectedPrompt()
	editing := -1
	if m.focus == focusRowEdit && m.row.Mode == session.RowEdit {
		editing = m.row.Index
	}
	prompts := m.session.Prompts()
	pItems := make([]list.Item, 0, len(prompts))
	for i, p := range prompts {
		pItems = append(pItems, promptItem{index: i, prompt: p, selected: selPrompt.Is(i), editing: i == editing})
	}
	pCur := m.promptsList.Index()
	m.promptsList.SetItems(pItems)
	m.promptsList.Select(clamp(pCur, 0, len(pItems)-1))
}

func (m *appModel) restoreState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if st.Pane == panePrompts.String() {
		m.pane = panePrompts
	}
	m.usersList.Select(clamp(st.UserCursor, 0, len(m.usersList.Items())-1))
	m.promptsList.Select(clamp(st.PromptCursor, 0, len(m.promptsList.Items())-1))
	m.hidePreview = st.HidePreview
}

func (m *appModel) saveState() {
	err := m.store.SaveTUIState(&store.TUIState{
		Pane:         m.pane.String(),
		UserCursor:   m.usersList.Index(),
		PromptCursor: m.promptsList.Index(),
		HidePreview:  m.hidePreview,
	})
	if err != nil {
		m.logger.Debug("save tui state failed", zap.Error(err))
	}
}

func (m *appModel) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m *appModel) setError(err error) tea.Cmd {
	m.logger.Warn("tui action failed", zap.Error(err))
	return m.setStatus(err.Error(), true)
}

// highlightedPrompt is the prompt under the Prompts cursor.
func (m *appModel) highlightedPrompt() (promptItem, bool) {
	it, ok := m.promptsList.SelectedItem().(promptItem)
	return it, ok
}

func (m *appModel) paneWidth() int {
	w := m.width / 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) resize() {
	// header, pane titles, input lines, preview, status, footer
	h := m.height - 8
	if !m.hidePreview {
		h -= m.previewHeight()
	}
	if h < 3 {
		h = 3
	}
	w := m.paneWidth() - 2
	m.usersList.SetSize(w, h)
	m.promptsList.SetSize(w, h)
	for _, ti := range []*textinput.Model{&m.newUser, &m.newShort, &m.newFull, &m.editShort, &m.editFull} {
		ti.Width = w - 12
	}
}

func (m *appModel) previewHeight() int {
	h := m.height / 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("whisperdeck")
	if sel, ok := m.session.SelectedUser().Index(); ok {
		if u, ok := m.session.User(sel); ok {
			header += styleMuted().Render("  Selected=" + u.Name)
		}
	}
	if m.store.Dir != "" {
		header += styleMuted().Render("  Dir=" + m.store.Dir)
	}

	pw := m.paneWidth()
	usersPane := m.viewUsersPane(pw)
	promptsPane := m.viewPromptsPane(pw)
	ph := max(lipgloss.Height(usersPane), lipgloss.Height(promptsPane))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(usersPane, pw, ph),
		normalizePane(promptsPane, m.width-pw, ph),
	)

	parts := []string{header, body}
	if !m.hidePreview {
		parts = append(parts, m.viewPreview())
	}
	parts = append(parts, m.viewStatus(), m.viewFooter())
	return strings.Join(parts, "\n")
}

func (m *appModel) paneTitle(title string, p pane) string {
	if m.pane == p && m.focus == focusList {
		return styleAccent().Render(title)
	}
	return styleMuted().Render(title)
}

func (m *appModel) viewUsersPane(w int) string {
	lines := []string{
		m.paneTitle(fmt.Sprintf("Users (%d)", len(m.session.Users())), paneUsers),
		m.usersList.View(),
		renderInputLine(w-2, "New user:", m.newUser.View(), m.focus == focusNewUser),
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) viewPromptsPane(w int) string {
	lines := []string{
		m.paneTitle(fmt.Sprintf("Prompts (%d)", len(m.session.Prompts())), panePrompts),
		m.promptsList.View(),
	}
	if m.focus == focusRowEdit {
		lines = append(lines,
			renderInputLine(w-2, fmt.Sprintf("Edit #%d short:", m.row.Index), m.editShort.View(), m.editShort.Focused()),
			renderInputLine(w-2, "full:", m.editFull.View(), m.editFull.Focused()),
		)
	} else {
		lines = append(lines,
			renderInputLine(w-2, "New prompt:", m.newShort.View(), m.newShort.Focused()),
			renderInputLine(w-2, "full:", m.newFull.View(), m.newFull.Focused()),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) viewPreview() string {
	h := m.previewHeight()
	it, ok := m.highlightedPrompt()
	if !ok {
		return normalizePane("", m.width, h)
	}
	title := styleMuted().Render("Preview: " + it.prompt.Short)
	body := renderMarkdown(it.prompt.Full, m.width-2, m.theme)
	if body == "" {
		body = styleMuted().Render(blankPromptLabel)
	}
	return normalizePane(title+"\n"+body, m.width, h)
}

func (m *appModel) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleAccent().Render(m.status)
}

func (m *appModel) viewFooter() string {
	var help string
	switch m.focus {
	case focusNewUser:
		help = "enter: add user  esc: cancel"
	case focusNewPrompt:
		help = "tab: switch field  enter (on full) / ctrl+s: add prompt  esc: cancel"
	case focusRowEdit:
		help = "tab: switch field  enter: save  esc: cancel"
	default:
		if m.pane == paneUsers {
			help = "enter: select + copy  a: add  x/d: delete  tab: prompts  p: preview  r: reload  q: quit"
		} else {
			del := "  x/d: delete"
			if !m.session.CanDeletePrompt() {
				del = ""
			}
			help = "enter: assign  a: add  e: edit" + del + "  tab: users  p: preview  r: reload  q: quit"
		}
	}
	return styleMuted().Render(help)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
