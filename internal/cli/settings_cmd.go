package cli

import (
	"errors"
	"fmt"
	"time"

	"focusdeck/internal/core/model"
	"focusdeck/internal/desktop"
	"focusdeck/internal/platform"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeSettings(cmd.OutOrStdout(), app.Repo.LoadSettings())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show timer preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				writeSettings(cmd.OutOrStdout(), app.Repo.LoadSettings())
				return nil
			},
		},
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		work, shortBreak, longBreak, idlePause time.Duration
		rounds                                 int
		autoStart, sound, notifications        bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change timer preferences",
		Example: `  focusdeck settings set --work 50m --short-break 10m
  focusdeck settings set --sound=false --idle-pause 5m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			var patch model.SettingsPatch
			for _, duration := range []struct {
				flag  string
				value *time.Duration
				field **time.Duration
			}{
				{"work", &work, &patch.Work},
				{"short-break", &shortBreak, &patch.ShortBreak},
				{"long-break", &longBreak, &patch.LongBreak},
			} {
				if !flags.Changed(duration.flag) {
					continue
				}
				if *duration.value <= 0 {
					return fmt.Errorf("--%s must be positive, got %s", duration.flag, *duration.value)
				}
				*duration.field = duration.value
			}
			if flags.Changed("rounds") {
				if rounds < 1 {
					return fmt.Errorf("--rounds must be at least 1, got %d", rounds)
				}
				patch.RoundsBeforeLongBreak = &rounds
			}
			if flags.Changed("idle-pause") {
				if idlePause < 0 {
					return fmt.Errorf("--idle-pause must not be negative, got %s", idlePause)
				}
				patch.IdlePauseAfter = &idlePause
			}
			if flags.Changed("auto-start") {
				patch.AutoStart = &autoStart
			}
			if flags.Changed("sound") {
				patch.SoundEnabled = &sound
			}
			if flags.Changed("notifications") {
				patch.NotificationsEnabled = &notifications
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change; see --help for the available flags")
			}

			settings, err := app.Repo.UpdateSettings(patch)
			if err != nil {
				return err
			}
			if _, err := app.Remote(desktop.CommandReload); err != nil && !errors.Is(err, platform.ErrNotRunning) {
				app.Logger.Warn("running instance did not reload settings", "err", err)
			}
			writeSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&work, "work", 0, "work session length, e.g. 25m")
	flags.DurationVar(&shortBreak, "short-break", 0, "short break length")
	flags.DurationVar(&longBreak, "long-break", 0, "long break length")
	flags.IntVar(&rounds, "rounds", 0, "work sessions before a long break")
	flags.BoolVar(&autoStart, "auto-start", false, "start the next session automatically")
	flags.BoolVar(&sound, "sound", false, "play a chime when a session ends")
	flags.BoolVar(&notifications, "notifications", false, "show desktop notifications")
	flags.DurationVar(&idlePause, "idle-pause", 0, "pause work after this much idle time, 0 disables")

	return cmd
}
