package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- <argv...>",
	Short: "Run a command, logging its output, and exit with its code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")

		res, err := a.runner.Run(args, nil, verbose)
		a.Close()
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, res.Stdout)
		fmt.Fprint(os.Stderr, res.Stderr)
		if res.ExitCode != 0 {
			os.Exit(res.ExitCode)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolP("verbose", "v", false, "Log output lines at info level")
	rootCmd.AddCommand(runCmd)
}
