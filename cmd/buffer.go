package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/vim"
)

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Print or clear the current buffer",
	Args:  cobra.NoArgs,
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
			return d.ClearBuffer()
		}
		out, err := d.Contents()
		if err != nil {
			return err
		}
		printOutput(out)
		return nil
	}),
}

var regCmd = &cobra.Command{
	Use:   "reg <name>",
	Short: "Print the contents of a register",
	Args:  cobra.ExactArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		out, err := d.Getreg(args[0])
		if err != nil {
			return err
		}
		printOutput(out)
		return nil
	}),
}

func init() {
	bufferCmd.Flags().Bool("clear", false, "Delete all lines without touching registers")
	rootCmd.AddCommand(bufferCmd, regCmd)
}
