package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/vim"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run an Ex command and print its output",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		out, err := d.Command(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printOutput(out)
		return nil
	}),
}

var evalCmd = &cobra.Command{
	Use:   "eval <expr...>",
	Short: "Evaluate a vim expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		out, err := d.Evaluate(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printOutput(out)
		return nil
	}),
}

var rawCmd = &cobra.Command{
	Use:   "raw <command...>",
	Short: "Send an Ex command without capturing output",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		return d.RawCommand(strings.Join(args, " "))
	}),
}

func init() {
	rootCmd.AddCommand(execCmd, evalCmd, rawCmd)
}
