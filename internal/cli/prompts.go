package cli

import (
	"context"
	"errors"

	"whisperdeck/internal/model"
	"whisperdeck/internal/session"

	"github.com/spf13/cobra"
)

type promptRow struct {
	Index int    `json:"index"`
	Short string `json:"short"`
	Full  string `json:"full"`
}

func promptRows(prompts []model.Prompt) []promptRow {
	out := make([]promptRow, 0, len(prompts))
	for i, p := range prompts {
		out = append(out, promptRow{Index: i, Short: p.Short, Full: p.Full})
	}
	return out
}

func lookupPrompt(s *session.Session, arg string) (int, model.Prompt, error) {
	i, err := parseIndex("prompt", arg)
	if err != nil {
		return 0, model.Prompt{}, err
	}
	p, ok := s.Prompt(i)
	if !ok {
		return 0, model.Prompt{}, errNotFound("prompt", arg)
	}
	return i, p, nil
}

func newPromptsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prompts",
		Aliases: []string{"prompt"},
		Short:   "List and edit prompts",
	}
	cmd.AddCommand(newPromptsListCmd(app))
	cmd.AddCommand(newPromptsAddCmd(app))
	cmd.AddCommand(newPromptsEditCmd(app))
	cmd.AddCommand(newPromptsRmCmd(app))
	return cmd
}

func newPromptsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, map[string]any{"data": promptRows(rt.session.Prompts())})
			})
		},
	}
}

func newPromptsAddCmd(app *App) *cobra.Command {
	var short, full string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("short") {
				return writeErr(cmd, errors.New("missing --short"))
			}
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				if err := rt.session.AddPrompt(ctx, model.Prompt{Short: short, Full: full}); err != nil {
					return writeErr(cmd, err)
				}
				prompts := rt.session.Prompts()
				i := len(prompts) - 1
				return writeOut(cmd, app, map[string]any{"data": promptRow{Index: i, Short: prompts[i].Short, Full: prompts[i].Full}})
			})
		},
	}
	cmd.Flags().StringVar(&short, "short", "", "Short name (shown in lists, used to match assignments)")
	cmd.Flags().StringVar(&full, "full", "", "Full text copied after the @name")
	return cmd
}

func newPromptsEditCmd(app *App) *cobra.Command {
	var short, full string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change a prompt's short name and/or full text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("short") && !cmd.Flags().Changed("full") {
				return writeErr(cmd, errors.New("nothing to change (pass --short and/or --full)"))
			}
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				i, p, err := lookupPrompt(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if cmd.Flags().Changed("short") {
					p.Short = short
				}
				if cmd.Flags().Changed("full") {
					p.Full = full
				}
				if err := rt.session.ModifyPrompt(ctx, i, p); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": promptRow{Index: i, Short: p.Short, Full: p.Full}})
			})
		},
	}
	cmd.Flags().StringVar(&short, "short", "", "New short name")
	cmd.Flags().StringVar(&full, "full", "", "New full text")
	return cmd
}

func newPromptsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove a prompt (the last remaining prompt cannot be removed)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				i, p, err := lookupPrompt(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := rt.session.RemovePrompt(ctx, i); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"removed": promptRow{Index: i, Short: p.Short, Full: p.Full},
					"prompts": promptRows(rt.session.Prompts()),
				}})
			})
		},
	}
}
