package cli

import (
	"context"

	"whisperdeck/internal/session"

	"github.com/spf13/cobra"
)

func newCopyCmd(app *App) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "copy <user-index>",
		Short: "Copy a user's whisper (\"@name prompt\") to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				i, u, err := lookupUser(rt.session, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				text := session.Compose(u)
				if printOnly {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{
						"user": i, "text": text, "copied": false,
					}})
				}

				var res session.CopyResult
				rt.session.OnCopy = func(r session.CopyResult) { res = r }
				if err := rt.session.SelectUser(session.At(i)); err != nil {
					return writeErr(cmd, err)
				}
				rt.session.Wait()
				if res.Err != nil {
					return writeErr(cmd, res.Err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"user": i, "text": res.Text, "copied": true,
				}})
			})
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the composed text instead of copying it")
	return cmd
}
