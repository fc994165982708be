package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"whisperdeck/internal/clip"
	"whisperdeck/internal/format"
	"whisperdeck/internal/logging"
	"whisperdeck/internal/session"
	"whisperdeck/internal/store"
	"whisperdeck/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	Backend    string
	Clipboard  string
	LogLevel   string
	PrettyJSON bool
	Format     string
	Ephemeral  bool

	// clipboard replaces the writer built from Clipboard (tests).
	clipboard clip.Writer
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "whisperdeck",
		Short:        "Assign canned prompts to users and copy \"@user prompt\" whispers to the clipboard",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  whisperdeck

  # Scriptable commands
  whisperdeck users add alice
  whisperdeck prompts add --short Greet --full "hi"
  whisperdeck users assign 0 1
  whisperdeck copy 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("WHISPERDECK_DIR", ""), "Data directory (default: config dataDir, then ~/.whisperdeck/data)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("WHISPERDECK_BACKEND", ""), "Storage backend (sqlite|json; default: autodetect)")
	cmd.PersistentFlags().StringVar(&app.Clipboard, "clipboard", envOr("WHISPERDECK_CLIPBOARD", ""), "Clipboard writer (auto|system|osc52|none)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("WHISPERDECK_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WHISPERDECK_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "Keep everything in memory (nothing is persisted or copied)")

	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newPromptsCmd(app))
	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// runtime is everything a command needs to read or mutate the collections.
type runtime struct {
	store   store.Store
	kv      store.KV
	logger  *zap.Logger
	session *session.Session
	cfg     *store.GlobalConfig
}

func (r *runtime) Close() error {
	r.session.Wait()
	_ = r.logger.Sync()
	return r.kv.Close()
}

// openRuntime resolves settings (flags > env > config > defaults), opens the store and
// hydrates a session from it.
func openRuntime(ctx context.Context, app *App, mirrorWarnings bool) (*runtime, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := firstNonEmpty(app.LogLevel, cfg.LogLevel)
	logger := logging.Nop()
	if !app.Ephemeral {
		cfgDir, err := store.ConfigDir()
		if err != nil {
			return nil, err
		}
		logger, err = logging.New(logging.Options{
			Dir:    filepath.Join(cfgDir, "logs"),
			Level:  level,
			Stderr: mirrorWarnings,
		})
		if err != nil {
			return nil, err
		}
	} else if _, err := logging.ParseLevel(level); err != nil {
		return nil, err
	}

	backend, err := store.ParseBackend(firstNonEmpty(app.Backend, cfg.Backend))
	if err != nil {
		return nil, err
	}
	if app.Ephemeral {
		backend = store.BackendMemory
	}

	var st store.Store
	if backend != store.BackendMemory {
		dir := firstNonEmpty(app.Dir, cfg.DataDir)
		if dir == "" {
			dir, err = store.DefaultDataDir()
			if err != nil {
				return nil, err
			}
		}
		st = store.Store{Dir: dir}
	}

	w, err := clipboardWriter(app, cfg)
	if err != nil {
		return nil, err
	}

	kv, err := st.Open(ctx, backend)
	if err != nil {
		return nil, err
	}
	s := session.New(kv, w, logger)
	if err := s.Hydrate(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}
	logger.Debug("opened store", zap.String("dir", st.Dir), zap.String("backend", string(backend)))

	return &runtime{store: st, kv: kv, logger: logger, session: s, cfg: cfg}, nil
}

func clipboardWriter(app *App, cfg *store.GlobalConfig) (clip.Writer, error) {
	if app.clipboard != nil {
		return app.clipboard, nil
	}
	if app.Ephemeral {
		return &clip.Memory{}, nil
	}
	mode, err := clip.ParseMode(firstNonEmpty(app.Clipboard, cfg.Clipboard))
	if err != nil {
		return nil, err
	}
	return clip.New(mode), nil
}

// withSession opens a runtime for one command and closes it afterwards.
func withSession(cmd *cobra.Command, app *App, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(ctx, app, true)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = rt.Close() }()
	return fn(ctx, rt)
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(ctx, app, false)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = rt.Close() }()

	theme := ""
	if rt.cfg.TUI != nil {
		theme = rt.cfg.TUI.Theme
	}
	return tui.Run(ctx, rt.session, rt.store, tui.Options{Theme: theme, Logger: rt.logger})
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
