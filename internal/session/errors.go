package session

import "errors"

// ErrLastPrompt is returned when removing the only remaining prompt.
var ErrLastPrompt = errors.New("cannot delete the last remaining prompt")

// ErrNotEditing is returned when saving a prompt row that is not in edit mode.
var ErrNotEditing = errors.New("prompt row is not being edited")
