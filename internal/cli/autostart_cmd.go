package cli

import (
	"fmt"
	"os"

	"focusdeck/internal/config"

	"github.com/spf13/cobra"
)

func newAutostartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Launch focusdeck at login",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start focusdeck when you log in",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				execPath, err := os.Executable()
				if err != nil {
					return fmt.Errorf("locate executable: %w", err)
				}
				if err := app.Platform.EnableAutostart(config.AppName, execPath); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting focusdeck at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.Platform.DisableAutostart(config.AppName); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether autostart is enabled",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				enabled, err := app.Platform.AutostartEnabled(config.AppName)
				if err != nil {
					return err
				}
				if enabled {
					fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
				}
				return nil
			},
		},
	)

	return cmd
}
