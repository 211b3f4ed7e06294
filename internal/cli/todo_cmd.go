package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	list := func(cmd *cobra.Command, _ []string) error {
		items, err := app.Todos.Items()
		if err != nil {
			return err
		}
		writeTodos(cmd.OutOrStdout(), items)
		return nil
	}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the to-do list",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List to-dos in the order they were added",
			Args:    cobra.NoArgs,
			RunE:    list,
		},
		&cobra.Command{
			Use:   "add <text>",
			Short: "Add a to-do",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := app.Todos.Add(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", item.ShortID(), item.Text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "done <id>",
			Short: "Toggle a to-do between done and open",
			Long:  "Toggle a to-do. The id may be any unique prefix of the full id.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := app.Todos.Toggle(args[0])
				if err != nil {
					return err
				}
				state := "open"
				if item.Completed {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s  %s\n", item.ShortID(), state, item.Text)
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"remove"},
			Short:   "Remove a to-do",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := app.Todos.Remove(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s  %s\n", item.ShortID(), item.Text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear-done",
			Short: "Remove every completed to-do",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				removed, err := app.Todos.ClearCompleted()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed.\n", removed)
				return nil
			},
		},
	)

	return cmd
}
