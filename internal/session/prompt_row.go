package session

import (
	"context"

	"whisperdeck/internal/model"
)

type RowMode int

const (
	RowView RowMode = iota
	RowEdit
)

func (m RowMode) String() string {
	if m == RowEdit {
		return "edit"
	}
	return "view"
}

// PromptRow is the view/edit state of one prompt row.
type PromptRow struct {
	Index int
	Mode  RowMode

	// Edit buffers; only meaningful in RowEdit.
	Short string
	Full  string
}

// Edit enters edit mode with buffers filled from the committed prompt.
func (r *PromptRow) Edit(committed model.Prompt) {
	r.Mode = RowEdit
	r.Short = committed.Short
	r.Full = committed.Full
}

// Save commits the buffers to prompt r.Index and returns to view mode. On error the row
// stays in edit mode so nothing typed is lost.
func (r *PromptRow) Save(ctx context.Context, s *Session) error {
	if r.Mode != RowEdit {
		return ErrNotEditing
	}
	if err := s.ModifyPrompt(ctx, r.Index, model.Prompt{Short: r.Short, Full: r.Full}); err != nil {
		return err
	}
	r.Mode = RowView
	return nil
}

// Cancel leaves edit mode and discards the buffers.
func (r *PromptRow) Cancel() {
	r.Mode = RowView
	r.Short = ""
	r.Full = ""
}

// Choose is a click on the row in view mode: it assigns this prompt to the selected user.
func (r *PromptRow) Choose(ctx context.Context, s *Session) error {
	if r.Mode != RowView {
		return nil
	}
	return s.AssignPrompt(ctx, r.Index)
}

// Delete removes this row's prompt. It fails with ErrLastPrompt when it is the only one.
func (r *PromptRow) Delete(ctx context.Context, s *Session) error {
	return s.RemovePrompt(ctx, r.Index)
}
