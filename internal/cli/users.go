package cli

import (
	"context"
	"strconv"
	"strings"

	"whisperdeck/internal/model"
	"whisperdeck/internal/session"

	"github.com/spf13/cobra"
)

type userRow struct {
	Index  int           `json:"index"`
	Name   string        `json:"name"`
	Prompt *model.Prompt `json:"prompt"`
}

func userRows(users []model.User) []userRow {
	out := make([]userRow, 0, len(users))
	for i, u := range users {
		out = append(out, userRow{Index: i, Name: u.Name, Prompt: u.Prompt})
	}
	return out
}

func parseIndex(kind, arg string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 0 {
		return 0, badIndexError{kind: kind, arg: arg}
	}
	return i, nil
}

func lookupUser(s *session.Session, arg string) (int, model.User, error) {
	i, err := parseIndex("user", arg)
	if err != nil {
		return 0, model.User{}, err
	}
	u, ok := s.User(i)
	if !ok {
		return 0, model.User{}, errNotFound("user", arg)
	}
	return i, u, nil
}

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List and edit users",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersAddCmd(app))
	cmd.AddCommand(newUsersRenameCmd(app))
	cmd.AddCommand(newUsersRmCmd(app))
	cmd.AddCommand(newUsersAssignCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users with their assigned prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, map[string]any{"data": userRows(rt.session.Users())})
			})
		},
	}
}

func newUsersAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Append a user (no prompt assigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				if err := rt.session.AddUser(ctx, args[0]); err != nil {
					return writeErr(cmd, err)
				}
				users := rt.session.Users()
				i := len(users) - 1
				return writeOut(cmd, app, map[string]any{"data": userRow{Index: i, Name: users[i].Name, Prompt: users[i].Prompt}})
			})
		},
	}
}

func newUsersRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> <name>",
		Short: "Rename a user, keeping its prompt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				i, _, err := lookupUser(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := rt.session.RenameUser(ctx, i, args[1]); err != nil {
					return writeErr(cmd, err)
				}
				u, _ := rt.session.User(i)
				return writeOut(cmd, app, map[string]any{"data": userRow{Index: i, Name: u.Name, Prompt: u.Prompt}})
			})
		},
	}
}

func newUsersRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				i, u, err := lookupUser(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := rt.session.RemoveUser(ctx, i); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"removed": userRow{Index: i, Name: u.Name, Prompt: u.Prompt},
					"users":   userRows(rt.session.Users()),
				}})
			})
		},
	}
}

func newUsersAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <user-index> <prompt-index>",
		Short: "Assign a copy of a prompt to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				ui, _, err := lookupUser(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				pi, _, err := lookupPrompt(rt.session, args[1])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := rt.session.AssignPromptTo(ctx, ui, pi); err != nil {
					return writeErr(cmd, err)
				}
				u, _ := rt.session.User(ui)
				return writeOut(cmd, app, map[string]any{"data": userRow{Index: ui, Name: u.Name, Prompt: u.Prompt}})
			})
		},
	}
}
