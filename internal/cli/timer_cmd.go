package cli

import (
	"errors"
	"fmt"

	"focusdeck/internal/core/effects"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/platform"

	"github.com/spf13/cobra"
)

var timerCommands = []struct {
	name  string
	short string
}{
	{timekeeper.CommandStatus, "Show the current session"},
	{timekeeper.CommandStart, "Start or resume the current session"},
	{timekeeper.CommandPause, "Pause the current session"},
	{timekeeper.CommandToggle, "Pause a running session or start a paused one"},
	{timekeeper.CommandSkip, "End the current session early and move to the next"},
	{timekeeper.CommandReset, "Return to a fresh work session"},
}

func newTimerCmds(app *App) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(timerCommands))
	for _, entry := range timerCommands {
		command := entry.name
		cmds = append(cmds, &cobra.Command{
			Use:   command,
			Short: entry.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				snapshot, err := app.timer(command)
				if err != nil {
					return err
				}
				writeStatus(cmd.OutOrStdout(), snapshot, app.Focus.Today())
				return nil
			},
		})
	}
	return cmds
}

// timer runs command on the live instance, or on the stored session when
// no instance is running.
func (app *App) timer(command string) (timekeeper.Snapshot, error) {
	snapshot, err := app.Remote(command)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, platform.ErrNotRunning) {
		return timekeeper.Snapshot{}, fmt.Errorf("%s: %w", command, err)
	}
	app.Logger.Debug("no running instance, using stored state", "command", command)
	return app.headless(command)
}

// headless restores the stored session, applies command and persists the
// result. A session that ran out while nothing was running completes here,
// so its work session still counts toward today's focus.
func (app *App) headless(command string) (timekeeper.Snapshot, error) {
	dispatcher := effects.NewDispatcher(effects.Config{
		OnWorkSessionComplete: app.Focus.RecordWorkSession,
		Logger:                app.Logger.WithPrefix("effects"),
		Sync:                  true,
	})
	settings := app.Repo.LoadSettings()
	keeper := timekeeper.New(settings, app.Repo.LoadSession(settings), timekeeper.Config{
		Persister: app.Repo,
		Effects:   dispatcher,
		Logger:    app.Logger.WithPrefix("timekeeper"),
	})
	keeper.Activate()
	defer keeper.Close()

	if err := keeper.Execute(command); err != nil {
		return timekeeper.Snapshot{}, err
	}
	return keeper.Snapshot(), nil
}
