package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/vim"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Print the server's current mode",
	Args:  cobra.NoArgs,
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		mode, err := d.Mode()
		if err != nil {
			return err
		}
		fmt.Println(mode)
		return nil
	}),
}

var normalCmd = &cobra.Command{
	Use:   "normal <keys...>",
	Short: "Feed keys in normal mode",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		keys := strings.Join(args, " ")
		if noremap, _ := cmd.Flags().GetBool("noremap"); noremap {
			return d.NormalNoRemap(keys)
		}
		return d.Normal(keys)
	}),
}

var insertCmd = &cobra.Command{
	Use:   "insert <text...>",
	Short: "Insert text before the cursor",
	Args:  cobra.MinimumNArgs(1),
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		return d.Insert(strings.Join(args, " "))
	}),
}

func init() {
	normalCmd.Flags().Bool("noremap", false, "Ignore user mappings")
	rootCmd.AddCommand(modeCmd, normalCmd, insertCmd)
}
