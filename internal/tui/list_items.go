package tui

import (
	"strings"

	"whisperdeck/internal/model"
)

const blankPromptLabel = "(blank prompt)"

// emptyUserItem is the leading Users row; choosing it clears the selection.
type emptyUserItem struct {
	selected bool
}

func (i emptyUserItem) FilterValue() string { return "" }

func (i emptyUserItem) Title() string {
	return marker(i.selected) + "Empty, use to unselect"
}

type userItem struct {
	index    int
	user     model.User
	selected bool
}

func (i userItem) FilterValue() string { return i.user.Name }

func (i userItem) Title() string {
	name := i.user.Name
	if strings.TrimSpace(name) == "" {
		name = "(no name)"
	}
	prompt := "-"
	if i.user.Prompt != nil {
		prompt = i.user.Prompt.Short
	}
	return marker(i.selected) + name + "  [" + prompt + "]"
}

type promptItem struct {
	index    int
	prompt   model.Prompt
	selected bool
	editing  bool
}

func (i promptItem) FilterValue() string { return i.prompt.Short }

func (i promptItem) Title() string {
	full := strings.Join(strings.Fields(i.prompt.Full), " ")
	if full == "" {
		full = blankPromptLabel
	}
	title := marker(i.selected) + i.prompt.Short + "  " + full
	if i.editing {
		title += "  (editing)"
	}
	return title
}

func marker(selected bool) string {
	if selected {
		return "● "
	}
	return "  "
}
