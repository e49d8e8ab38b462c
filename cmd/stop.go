package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/vimdrive/internal/vim"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a vim server",
	Args:  cobra.NoArgs,
	RunE: withDriver(func(cmd *cobra.Command, a *app, d *vim.Driver, args []string) error {
		running, err := d.IsRunning()
		if err != nil {
			return err
		}
		if !running {
			if err := a.store.RecordStop(d.Name()); err != nil {
				return err
			}
			return fmt.Errorf("server %q is not running", d.Name())
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Stop server %q? [y/N] ", d.Name())
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := d.Stop(); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		if err := d.WaitStopped(); err != nil {
			return fmt.Errorf("server %q did not exit: %w", d.Name(), err)
		}
		if err := a.store.RecordStop(d.Name()); err != nil {
			return err
		}

		fmt.Printf("Stopped %q\n", d.Name())
		return nil
	}),
}

func init() {
	stopCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(stopCmd)
}

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Remove a server from the vimdrive registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		name := a.driver().Name()
		if err := checkOwned(a.store, name, false); err != nil {
			return err
		}
		if err := a.store.Forget(name); err != nil {
			return fmt.Errorf("failed to forget server: %w", err)
		}
		fmt.Printf("Forgot %q\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}
