// Package desktop wires the timer into the tray, the panel and the control
// channel used by the CLI.
package desktop

import (
	"context"
	"errors"

	"focusdeck/internal/config"
	"focusdeck/internal/core/effects"
	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/focus"
	"focusdeck/internal/platform"
	"focusdeck/internal/storage"
	"focusdeck/internal/ui/animation"
	"focusdeck/internal/ui/panel"
	"focusdeck/internal/ui/preferences"
	"focusdeck/internal/ui/tray"
	"focusdeck/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/charmbracelet/log"
)

const appID = "com.focusdeck.app"

// ErrNoSystemTray is returned when the driver cannot show a tray icon.
var ErrNoSystemTray = errors.New("system tray unsupported on this platform")

// Deps are the services Run needs. They outlive the UI.
type Deps struct {
	Config *config.Config
	Logger *log.Logger
	Repo   *storage.Repository
	Focus  *focus.Tracker
}

// Run starts the tray application and blocks until the user quits. It returns
// platform.ErrAlreadyRunning when another instance holds the lock.
func Run(deps Deps) error {
	if err := deps.validate(); err != nil {
		return err
	}
	logger := deps.Logger
	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return ErrNoSystemTray
	}

	focusChanged := make(chan struct{}, 1)
	var audio effects.AudioSink
	if player, err := platform.NewTonePlayer(); err != nil {
		logger.Warn("chime disabled", "err", err)
	} else {
		audio = player
	}
	dispatcher := effects.NewDispatcher(effects.Config{
		Audio:    audio,
		Notifier: tray.NewNotifier(fyneApp),
		Vibrator: platform.NoHaptics{},
		OnWorkSessionComplete: func() {
			deps.Focus.RecordWorkSession()
			select {
			case focusChanged <- struct{}{}:
			default:
			}
		},
		Logger: logger.WithPrefix("effects"),
	})

	settings := deps.Repo.LoadSettings()
	keeper := timekeeper.New(settings, deps.Repo.LoadSession(settings), timekeeper.Config{
		TickInterval:      deps.Config.TickInterval,
		IdleCheckInterval: deps.Config.IdleCheckInterval,
		Persister:         deps.Repo,
		Effects:           dispatcher,
		Logger:            logger.WithPrefix("timekeeper"),
	})
	keeper.SetIdleChecker(platform.NewIdleProvider())
	events := keeper.Subscribe(32)

	timerPanel := panel.New(fyneApp, panel.Actions{
		OnToggle: keeper.Toggle,
		OnReset:  keeper.Reset,
		OnSkip:   keeper.Skip,
		OnToggleSound: func() {
			keeper.ToggleSound()
		},
	})
	prefsWindow := preferences.New(fyneApp, settings, func(patch model.SettingsPatch) {
		keeper.UpdateSettings(patch)
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnToggle: keeper.Toggle,
		OnSkip:   keeper.Skip,
		OnReset:  keeper.Reset,
		OnToggleSound: func() {
			keeper.ToggleSound()
		},
		OnToggleAutoStart: func() {
			keeper.ToggleAutoStart()
		},
		OnToggleNotify: func() {
			keeper.ToggleNotifications()
		},
		OnShowTimer: timerPanel.Show,
		OnPreferences: func() {
			prefsWindow.UpdateSettings(keeper.Settings())
			prefsWindow.Show()
		},
		OnQuit: fyneApp.Quit,
	})
	trayManager.SetIcon(resources.MustIcon(resources.IconPaused))

	blinker := animation.New(animation.DefaultConfig(), func(icon fyne.Resource) {
		fyne.Do(func() {
			trayManager.SetIcon(icon)
		})
	})

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		watchEvents(events, focusChanged, eventSinks{
			today: deps.Focus.Today,
			render: func(snapshot timekeeper.Snapshot, today focus.Focus) {
				timerPanel.Update(snapshot, today)
				fyne.Do(func() {
					trayManager.Update(snapshot)
				})
			},
			settings: func() {
				current := keeper.Settings()
				fyne.Do(func() {
					prefsWindow.UpdateSettings(current)
				})
			},
			icon: func(name string, alert bool) {
				if alert {
					blinker.Attention(context.Background(), resources.MustIcon(resources.IconAlert), resources.MustIcon(name))
					return
				}
				blinker.Show(resources.MustIcon(name))
			},
			logger: logger,
		})
	}()

	keeper.Activate()
	guard.Serve(Handler(keeper, deps.Repo, func() {
		fyne.Do(timerPanel.Show)
	}))
	timerPanel.Show()
	logger.Info("started", "storage", deps.Config.Storage, "instance", guard.Address())
	fyneApp.Run()

	keeper.Close()
	<-loopDone
	blinker.Stop()
	dispatcher.Wait()
	logger.Info("stopped")
	return nil
}

// eventSinks receive the presentation updates derived from timer events.
type eventSinks struct {
	today    func() focus.Focus
	render   func(snapshot timekeeper.Snapshot, today focus.Focus)
	settings func()
	icon     func(name string, alert bool)
	logger   *log.Logger
}

// watchEvents forwards timer events to the UI until events is closed.
func watchEvents(events <-chan timekeeper.Event, focusChanged <-chan struct{}, sinks eventSinks) {
	var (
		ind      indicator
		today    = sinks.today()
		snapshot timekeeper.Snapshot
		seen     bool
	)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			snapshot, seen = event.Snapshot, true
			switch event.Type {
			case timekeeper.EventComplete:
				sinks.logger.Info("session complete", "mode", event.Completed)
			case timekeeper.EventSettings:
				sinks.settings()
			case timekeeper.EventIdlePause:
				sinks.logger.Info("paused after idle", "message", event.Message)
			case timekeeper.EventIdleError:
				sinks.logger.Debug("idle check", "message", event.Message)
			}
			if icon, alert, changed := ind.next(event); changed {
				sinks.icon(icon, alert)
			}
			sinks.render(snapshot, today)
		case <-focusChanged:
			today = sinks.today()
			if seen {
				sinks.render(snapshot, today)
			}
		}
	}
}

func (deps Deps) validate() error {
	switch {
	case deps.Config == nil:
		return errors.New("desktop: missing config")
	case deps.Logger == nil:
		return errors.New("desktop: missing logger")
	case deps.Repo == nil:
		return errors.New("desktop: missing repository")
	case deps.Focus == nil:
		return errors.New("desktop: missing focus tracker")
	}
	return nil
}
