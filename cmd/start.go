package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a vim server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		vimrc, _ := cmd.Flags().GetString("vimrc")
		if vimrc != "" {
			if vimrc, err = filepath.Abs(vimrc); err != nil {
				return err
			}
		}

		d := a.driver()
		if err := d.Start(vimrc); err != nil {
			return err
		}
		if err := a.store.RecordStart(d.Name(), d.Executable(), d.Vimrc()); err != nil {
			return fmt.Errorf("failed to record server: %w", err)
		}

		fmt.Printf("Started %q\n", d.Name())
		return nil
	},
}

func init() {
	startCmd.Flags().StringP("vimrc", "u", "", "Vimrc passed with -u")
	rootCmd.AddCommand(startCmd)
}
