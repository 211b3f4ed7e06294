// Package effects executes the side effects requested at session boundaries.
// Every effect is best effort: failures are logged and never reach the timer.
package effects

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"

	"github.com/charmbracelet/log"
)

// ErrUnsupported reports a sink the host cannot provide.
var ErrUnsupported = errors.New("unsupported on this host")

// Permission is the notification permission state.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notifier shows system notifications.
type Notifier interface {
	Permission() Permission
	RequestPermission() Permission
	Show(title, body string) error
}

// AudioSink plays a single tone.
type AudioSink interface {
	PlayTone(frequencyHz float64, duration time.Duration, volume float64) error
}

// Vibrator triggers a haptic pattern of alternating on/off durations.
type Vibrator interface {
	Vibrate(pattern []time.Duration) error
}

// Chime parameters for the end-of-session tone.
const (
	ChimeFrequency = 880.0
	ChimeDuration  = 700 * time.Millisecond
	ChimeVolume    = 0.12
)

// VibratePattern is the buzz-pause-buzz pulse fired at a boundary.
var VibratePattern = []time.Duration{80 * time.Millisecond, 40 * time.Millisecond, 80 * time.Millisecond}

// Config wires the sinks. Nil sinks are skipped.
type Config struct {
	Audio    AudioSink
	Notifier Notifier
	Vibrator Vibrator
	// OnWorkSessionComplete runs once for every finished work session.
	OnWorkSessionComplete func()
	Logger                *log.Logger
	// Sync runs effects on the calling goroutine. Tests use it.
	Sync bool
}

// Dispatcher implements timekeeper.EffectRunner.
type Dispatcher struct {
	config Config
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(config Config) *Dispatcher {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{config: config, logger: logger}
}

// Run starts every effect independently and returns without waiting.
func (dispatcher *Dispatcher) Run(effects []timekeeper.Effect, settings model.Settings) {
	for _, effect := range effects {
		dispatcher.spawn(string(effect.Type), func() error {
			return dispatcher.execute(effect, settings)
		})
	}
}

// Wait blocks until every started effect has returned.
func (dispatcher *Dispatcher) Wait() {
	dispatcher.wg.Wait()
}

func (dispatcher *Dispatcher) execute(effect timekeeper.Effect, settings model.Settings) error {
	switch effect.Type {
	case timekeeper.EffectChime:
		if !settings.SoundEnabled || dispatcher.config.Audio == nil {
			return nil
		}
		return dispatcher.config.Audio.PlayTone(ChimeFrequency, ChimeDuration, ChimeVolume)
	case timekeeper.EffectVibrate:
		if dispatcher.config.Vibrator == nil {
			return nil
		}
		return dispatcher.config.Vibrator.Vibrate(VibratePattern)
	case timekeeper.EffectNotify:
		if !settings.NotificationsEnabled {
			return nil
		}
		return dispatcher.notify(effect.Title, effect.Body)
	case timekeeper.EffectWorkComplete:
		if dispatcher.config.OnWorkSessionComplete != nil {
			dispatcher.config.OnWorkSessionComplete()
		}
		return nil
	case timekeeper.EffectRequestPermission:
		if dispatcher.config.Notifier == nil {
			return nil
		}
		if dispatcher.config.Notifier.Permission() == PermissionDefault {
			dispatcher.config.Notifier.RequestPermission()
		}
		return nil
	default:
		return fmt.Errorf("unknown effect %q", effect.Type)
	}
}

// notify shows the notification when permission is granted, asks once when
// it is undecided and drops it when denied.
func (dispatcher *Dispatcher) notify(title, body string) error {
	notifier := dispatcher.config.Notifier
	if notifier == nil {
		return nil
	}
	switch notifier.Permission() {
	case PermissionGranted:
		return notifier.Show(title, body)
	case PermissionDefault:
		if notifier.RequestPermission() == PermissionGranted {
			return notifier.Show(title, body)
		}
		return nil
	default:
		return nil
	}
}

func (dispatcher *Dispatcher) spawn(name string, run func() error) {
	task := func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				dispatcher.logger.Warn("effect panicked", "effect", name, "panic", recovered)
			}
		}()
		if err := run(); err != nil {
			if errors.Is(err, ErrUnsupported) {
				dispatcher.logger.Debug("effect unsupported", "effect", name)
				return
			}
			dispatcher.logger.Warn("effect failed", "effect", name, "err", err)
		}
	}

	if dispatcher.config.Sync {
		task()
		return
	}
	dispatcher.wg.Add(1)
	go func() {
		defer dispatcher.wg.Done()
		task()
	}()
}
