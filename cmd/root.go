package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/proc"
	"github.com/simon/vimdrive/internal/tui"
	"github.com/simon/vimdrive/internal/vim"
)

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:           "vimdrive",
	Short:         "Drive vim servers for functional tests",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		// Log lines would corrupt the alt screen.
		quiet := slog.New(slog.DiscardHandler)
		runner := proc.New(quiet)
		runner.Env = a.cfg.Env

		src := tui.Source{
			Exec:       runner,
			Executable: a.cfg.Executable,
			Env:        a.cfg.Env,
			Store:      a.store,
			Options: []vim.Option{
				vim.WithStartPolling(a.cfg.Start.Interval, a.cfg.Start.Attempts),
				vim.WithLogger(quiet),
			},
		}

		p := tea.NewProgram(tui.NewModel(src), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("name", "s", "", "Vim server name (default from config, PYTEST_VIM)")
	f.String("config", "", "Config file (default $XDG_CONFIG_HOME/vimdrive/config.yaml)")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("log-format", "", "Log format: text or json")
	f.Bool("force", false, "Operate on a server not started by vimdrive")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
