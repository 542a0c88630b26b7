package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskquest/internal/logging"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/storage"
	"github.com/sandeepkv93/taskquest/internal/store"
	"github.com/sandeepkv93/taskquest/internal/update"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskquest failed: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dbPath     string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "taskquest",
		Short: "A retro-game flavoured to-do list for the terminal",
		Long: `taskquest keeps your missions in a local SQLite file and plays them out
as a side-scrolling quest: adding a mission makes the hero jump, completing
one spawns a mushroom, and clearing every mission starts the boss fight.

Configuration is layered: defaults, then the TOML file from --config (or
taskquest/config.toml under the user config dir), then TASKQUEST_* variables,
then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.runTUI()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "TOML config file")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides TASKQUEST_DB)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path (overrides TASKQUEST_LOG_FILE)")

	root.AddCommand(
		newSignUpCmd(opts),
		newSignInCmd(opts),
		newSignOutCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newReportCmd(opts),
	)
	return root
}

type app struct {
	cfg       update.RuntimeConfig
	logger    *log.Logger
	logCloser io.Closer
	repo      *storage.SQLiteRepository
	client    *store.Local
}

func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(dir, "taskquest", "config.toml")
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := update.LoadRuntimeConfig(resolveConfigPath(opts.configPath))
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.DatabasePath = opts.dbPath
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}

	logger, closer, err := logging.New(logging.Options{
		File:      cfg.LogFile,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Timestamp: true,
	})
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	client, err := store.NewLocal(ctx, repo, store.WithLogger(logger))
	if err != nil {
		_ = repo.Close()
		_ = closer.Close()
		return nil, err
	}
	logger.Debug("opened quest log", "db", cfg.DatabasePath)
	return &app{cfg: cfg, logger: logger, logCloser: closer, repo: repo, client: client}, nil
}

func (a *app) Close() error {
	return errors.Join(a.repo.Close(), a.logCloser.Close())
}

func (a *app) runTUI() error {
	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Client: a.client,
		Alarms: engine,
		Logger: a.logger,
		Config: a.cfg,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if dropped := engine.Dropped(); dropped > 0 {
		a.logger.Warn("alarms dropped", "count", dropped)
	}
	return nil
}

// requireUser returns the persisted session's user for the one-shot commands.
func (a *app) requireUser() (*store.User, error) {
	u := a.client.CurrentUser()
	if u == nil {
		return nil, errors.New("not signed in; run `taskquest signin <email>` first")
	}
	return u, nil
}
