package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/tui"
	"github.com/simon/vimdrive/internal/vim"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List vim servers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		src := tui.Source{
			Exec:       a.runner,
			Executable: a.cfg.Executable,
			Env:        a.cfg.Env,
			Store:      a.store,
			Options:    []vim.Option{vim.WithLogger(a.log)},
		}
		servers, err := src.List()
		if err != nil {
			return err
		}
		if len(servers) == 0 {
			fmt.Println("No vim servers.")
			return nil
		}

		header := fmt.Sprintf("%-28s  %-8s  %-6s  %-6s  %s", "NAME", "STATE", "MODE", "AGE", "VIMRC")
		fmt.Println(listHeader.Render(header))
		for _, s := range servers {
			state := "stopped"
			if s.Live {
				state = "running"
			}
			// Servers vimdrive did not start are marked.
			if !s.Registered {
				state += "*"
			}
			mode := "-"
			if s.Mode != "" {
				mode = s.Mode.String()
			}
			age := "-"
			if !s.StartedAt.IsZero() {
				age = tui.FormatAge(time.Since(s.StartedAt))
			}
			fmt.Printf("%-28s  %-8s  %-6s  %-6s  %s\n", s.Name, state, mode, age, s.Vimrc)
		}
		return nil
	},
}

var listHeader = lipgloss.NewStyle().Bold(true)

func init() {
	rootCmd.AddCommand(listCmd)
}
