package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"whisperdeck/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write users and prompts as a bundle (--format json|yaml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				b, err := store.EncodeBundle(store.Bundle{
					Users:   rt.session.Users(),
					Prompts: rt.session.Prompts(),
				}, app.Format)
				if err != nil {
					return writeErr(cmd, err)
				}

				out = strings.TrimSpace(out)
				if out == "" || out == "-" {
					_, err := cmd.OutOrStdout().Write(b)
					return err
				}
				abs, err := filepath.Abs(out)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := os.WriteFile(abs, b, 0o644); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"path":    abs,
					"users":   len(rt.session.Users()),
					"prompts": len(rt.session.Prompts()),
				}})
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool
	var inFormat string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append (or with --replace, load) users and prompts from a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.DecodeBundle(data, inFormat, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(ctx context.Context, rt *runtime) error {
				if err := rt.session.Import(ctx, b.Users, b.Prompts, replace); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"imported": map[string]int{"users": len(b.Users), "prompts": len(b.Prompts)},
					"replaced": replace,
					"users":    userRows(rt.session.Users()),
					"prompts":  promptRows(rt.session.Prompts()),
				}})
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace both collections instead of appending")
	cmd.Flags().StringVar(&inFormat, "input-format", "", "Bundle format (json|yaml; default: from the file extension)")
	return cmd
}
