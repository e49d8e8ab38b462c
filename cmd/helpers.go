package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/config"
	"github.com/simon/vimdrive/internal/logging"
	"github.com/simon/vimdrive/internal/proc"
	"github.com/simon/vimdrive/internal/state"
	"github.com/simon/vimdrive/internal/vim"
)

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	runner *proc.Runner
	store  *state.Store
	force  bool
}

func setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if name, _ := flags.GetString("name"); name != "" {
		cfg.ServerName = name
	}
	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if format, _ := flags.GetString("log-format"); format != "" {
		cfg.Logging.Format = format
	}

	log, err := logging.New(os.Stderr, cfg.Logging.Level, logging.Format(cfg.Logging.Format))
	if err != nil {
		return nil, err
	}

	store, err := state.Open(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	runner := proc.New(log)
	runner.Env = cfg.Env
	runner.PTY = cfg.PTY

	force, _ := flags.GetBool("force")
	return &app{cfg: cfg, log: log, runner: runner, store: store, force: force}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// driver returns a driver for the configured server name.
func (a *app) driver() *vim.Driver {
	opts := append(a.cfg.DriverOptions(), vim.WithLogger(a.log))
	return vim.New(a.runner, opts...)
}

// owned returns a driver for the configured server after checking that
// vimdrive started it.
func (a *app) owned() (*vim.Driver, error) {
	d := a.driver()
	if err := checkOwned(a.store, d.Name(), a.force); err != nil {
		return nil, err
	}
	return d, nil
}

type registry interface {
	Known(name string) (bool, error)
}

func checkOwned(r registry, name string, force bool) error {
	if force {
		return nil
	}
	known, err := r.Known(name)
	if err != nil {
		return fmt.Errorf("failed to read state db: %w", err)
	}
	if !known {
		return fmt.Errorf("server %q was not started by vimdrive (use --force)", name)
	}
	return nil
}

// withDriver runs fn against the owned server.
func withDriver(fn func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.owned()
		if err != nil {
			return err
		}
		return fn(cmd, a, d, args)
	}
}

// printOutput writes s followed by a newline unless it is empty.
func printOutput(s string) {
	if s == "" {
		return
	}
	fmt.Println(s)
}
