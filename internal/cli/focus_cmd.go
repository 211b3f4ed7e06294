package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"focusdeck/internal/focus"

	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show or set today's main focus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeFocus(cmd.OutOrStdout(), app.Focus.Today(), time.Now())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <task>",
			Short: "Set today's focus",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				today, err := app.Focus.SetTask(strings.Join(args, " "))
				if err != nil {
					return err
				}
				writeFocusLine(cmd.OutOrStdout(), today)
				return nil
			},
		},
		&cobra.Command{
			Use:   "done",
			Short: "Toggle today's focus between done and open",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				today, err := app.Focus.ToggleDone()
				if err != nil {
					return err
				}
				writeFocusLine(cmd.OutOrStdout(), today)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear today's focus",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				today, err := app.Focus.Clear()
				if err != nil {
					return err
				}
				writeFocusLine(cmd.OutOrStdout(), today)
				return nil
			},
		},
	)

	return cmd
}

func writeFocus(w io.Writer, today focus.Focus, now time.Time) {
	fmt.Fprintf(w, "%s.\n", focus.Greeting(now.Hour()))
	writeFocusLine(w, today)
}
