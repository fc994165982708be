package session

import "whisperdeck/internal/model"

// Compose builds the whisper text copied when u is selected: "@name full" when the user has
// a name, otherwise just the prompt's full text. A user without a prompt contributes "".
func Compose(u model.User) string {
	if u.Name != "" {
		return "@" + u.Name + " " + u.PromptFull()
	}
	return u.PromptFull()
}
