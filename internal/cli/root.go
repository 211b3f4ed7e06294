// Package cli implements the focusdeck command line. Timer commands talk to
// a running tray instance when there is one and act on the stored state
// otherwise.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"focusdeck/internal/config"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/desktop"
	"focusdeck/internal/focus"
	"focusdeck/internal/logging"
	"focusdeck/internal/platform"
	"focusdeck/internal/storage"
	"focusdeck/internal/todo"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands. Fields left nil are built
// from the loaded configuration before a command runs.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Repo     *storage.Repository
	Focus    *focus.Tracker
	Todos    *todo.List
	Platform platform.Service

	// Remote sends a control command to the running instance.
	Remote func(command string) (timekeeper.Snapshot, error)
	// Desktop runs the tray application.
	Desktop func(deps desktop.Deps) error

	closers []io.Closer
}

// NewRootCmd creates the top-level "focusdeck" command. Without a
// subcommand it starts the tray application.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "focusdeck",
		Short:         "Pomodoro timer for the system tray",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd, configPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runDesktop(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("storage", "", "state backend: yaml, sqlite or memory")
	flags.String("data-dir", "", "directory holding focusdeck state")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text, json or logfmt")
	flags.String("log-file", "", "also append logs to this file")

	root.AddCommand(newRunCmd(app))
	root.AddCommand(newTimerCmds(app)...)
	root.AddCommand(
		newSettingsCmd(app),
		newFocusCmd(app),
		newTodoCmd(app),
		newAutostartCmd(app),
	)

	return root
}

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the tray application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runDesktop(cmd)
		},
	}
}

// Close releases the storage opened by setup.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

func (app *App) setup(cmd *cobra.Command, configPath string) error {
	if app.Platform == nil {
		app.Platform = platform.NewService()
	}
	if app.Remote == nil {
		app.Remote = desktop.Remote
	}
	if app.Desktop == nil {
		app.Desktop = desktop.Run
	}
	if app.Repo != nil {
		if app.Logger == nil {
			app.Logger = logging.Discard()
		}
		return nil
	}

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := app.newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, store)

	app.Config = cfg
	app.Logger = logger
	app.Repo = storage.NewRepository(store, logger.WithPrefix("storage"))
	app.Focus = focus.NewTracker(store, logger.WithPrefix("focus"), time.Now)
	app.Todos = todo.NewList(store, time.Now)
	logger.Debug("configured", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return nil
}

func (app *App) newLogger(cmd *cobra.Command, cfg config.LogConfig) (*log.Logger, error) {
	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.Level)
	opts.Formatter = logging.ParseFormatter(cfg.Format)

	out := cmd.ErrOrStderr()
	if cfg.File != "" {
		file, err := logging.OpenFile(cfg.File)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, file)
		out = io.MultiWriter(out, file)
	}
	return logging.New(out, opts), nil
}

func (app *App) runDesktop(cmd *cobra.Command) error {
	err := app.Desktop(desktop.Deps{
		Config: app.Config,
		Logger: app.Logger,
		Repo:   app.Repo,
		Focus:  app.Focus,
	})
	if !errors.Is(err, platform.ErrAlreadyRunning) {
		return err
	}
	if _, err := app.Remote(desktop.CommandShow); err != nil {
		return fmt.Errorf("focusdeck is already running: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "focusdeck is already running; showing the timer.")
	return nil
}
