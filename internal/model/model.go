package model

// Prompt is a reusable whisper template. Identity is positional; Short is only a display
// label and is not guaranteed to be unique.
type Prompt struct {
	Short string `json:"short" yaml:"short"`
	Full  string `json:"full" yaml:"full"`
}

// User is a whisper target. Prompt is a value copy taken when the prompt was assigned,
// so later edits to the prompt list do not change it.
type User struct {
	Name   string  `json:"name" yaml:"name"`
	Prompt *Prompt `json:"prompt,omitempty" yaml:"prompt,omitempty"`
}

// PromptShort returns the short name of the assigned prompt, or "" when none is assigned.
func (u User) PromptShort() string {
	if u.Prompt == nil {
		return ""
	}
	return u.Prompt.Short
}

// PromptFull returns the full text of the assigned prompt, or "" when none is assigned.
func (u User) PromptFull() string {
	if u.Prompt == nil {
		return ""
	}
	return u.Prompt.Full
}

// WithPrompt returns a copy of u holding its own copy of p.
func (u User) WithPrompt(p Prompt) User {
	cp := p
	return User{Name: u.Name, Prompt: &cp}
}

// DefaultPromptShort is the short name of the sentinel prompt a fresh prompt list starts with.
const DefaultPromptShort = "Blank"

// DefaultPrompts returns the initial prompt list (a fresh slice on every call).
func DefaultPrompts() []Prompt {
	return []Prompt{{Short: DefaultPromptShort, Full: ""}}
}

// DefaultUsers returns the initial (empty, non-nil) user list.
func DefaultUsers() []User {
	return []User{}
}
