package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskflow/internal/client/api"
	"taskflow/internal/client/session"
	"taskflow/internal/client/store"
)

const Version = "1.0.0"

// app carries what every command needs once flags and config are resolved.
type app struct {
	configPath string
	verbose    bool

	cfg     *Config
	logger  *zap.Logger
	session *session.Session
	client  *api.Client
	mirror  *store.FileMirror
	tasks   *store.Store
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - personal tasks and daily summaries",
		Long: `TaskFlow keeps your tasks in sync with a TaskFlow server.

Changes show up locally at once and are sent to the server in the background
of each command. When the server cannot be reached the last known list is
read from the local mirror.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ~/.taskflow/config.yaml)")
	flags.String("server", "", "server base URL")
	flags.String("language", "", "language for server messages (en, fr)")
	flags.String("data-dir", "", "directory for the session and the local task mirror")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log sync failures to stderr")

	rootCmd.AddCommand(newRegisterCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newWhoamiCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newToggleCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newCategoriesCmd(a))
	rootCmd.AddCommand(newSummaryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	v := newViper()
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"server":   "server",
		"language": "language",
		"data_dir": "data-dir",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := loadConfig(v, a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	a.logger = zap.NewNop()
	if a.verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			a.logger = logger
		}
	}

	a.session = session.New(cfg.DataDir)
	if err := a.session.Load(); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	a.client = api.New(cfg.Server,
		api.WithToken(a.session.Token),
		api.WithLanguage(cfg.Language),
	)
	a.mirror = store.NewFileMirror(cfg.DataDir)
	a.tasks = store.New(a.client, a.mirror, a.logger.Named("store"))
	return nil
}

func (a *app) requireLogin() error {
	if !a.session.LoggedIn() {
		return session.ErrNotLoggedIn
	}
	return nil
}

// load fills the store and warns when the list did not come from the server.
func (a *app) load(cmd *cobra.Command) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	switch a.tasks.Load(cmd.Context()) {
	case store.SourceMirror:
		fmt.Fprintln(cmd.ErrOrStderr(), "offline: showing the last synced task list")
	case store.SourceEmpty:
		fmt.Fprintln(cmd.ErrOrStderr(), "offline: no local copy of your tasks yet")
	}
	return nil
}

// Execute runs the terminal client.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printYAML(cmd.OutOrStdout(), a.cfg)
		},
	}
}
