package session

import (
	"testing"

	"whisperdeck/internal/model"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user model.User
		want string
	}{
		{
			name: "named user",
			user: model.User{Name: "bob", Prompt: &model.Prompt{Short: "s", Full: "hello"}},
			want: "@bob hello",
		},
		{
			name: "unnamed user",
			user: model.User{Name: "", Prompt: &model.Prompt{Short: "s", Full: "hi"}},
			want: "hi",
		},
		{
			name: "named user without prompt keeps trailing space",
			user: model.User{Name: "carol"},
			want: "@carol ",
		},
		{
			name: "unnamed user without prompt",
			user: model.User{},
			want: "",
		},
	}
	for _, tc := range tests {
		if got := Compose(tc.user); got != tc.want {
			t.Fatalf("%s: Compose = %q; want %q", tc.name, got, tc.want)
		}
	}
}
