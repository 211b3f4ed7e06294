package effects

import (
	"errors"
	"sync"
	"testing"
	"time"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	mu    sync.Mutex
	tones []float64
	err   error
}

func (audio *fakeAudio) PlayTone(frequencyHz float64, _ time.Duration, _ float64) error {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	audio.tones = append(audio.tones, frequencyHz)
	return audio.err
}

type fakeNotifier struct {
	mu         sync.Mutex
	permission Permission
	answer     Permission
	requests   int
	shown      []string
}

func (notifier *fakeNotifier) Permission() Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

func (notifier *fakeNotifier) RequestPermission() Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.requests++
	notifier.permission = notifier.answer
	return notifier.answer
}

func (notifier *fakeNotifier) Show(title, _ string) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.shown = append(notifier.shown, title)
	return nil
}

type panickingVibrator struct{}

func (panickingVibrator) Vibrate([]time.Duration) error {
	panic("no motor")
}

type unsupportedVibrator struct{}

func (unsupportedVibrator) Vibrate([]time.Duration) error {
	return ErrUnsupported
}

func settingsWith(sound, notifications bool) model.Settings {
	settings := model.DefaultSettings()
	settings.SoundEnabled = sound
	settings.NotificationsEnabled = notifications
	return settings
}

// complete runs the effects of a session boundary leaving mode.
func complete(dispatcher *Dispatcher, mode model.Mode, settings model.Settings) {
	transition := timekeeper.Complete(model.Session{Mode: mode}, settings, time.Time{})
	dispatcher.Run(transition.Effects, settings)
}

func TestComplete_WorkFiresEverything(t *testing.T) {
	audio := &fakeAudio{}
	notifier := &fakeNotifier{permission: PermissionGranted}
	workDone := 0
	dispatcher := NewDispatcher(Config{
		Audio:                 audio,
		Notifier:              notifier,
		Vibrator:              unsupportedVibrator{},
		OnWorkSessionComplete: func() { workDone++ },
		Sync:                  true,
	})

	complete(dispatcher, model.ModeWork, settingsWith(true, true))

	assert.Equal(t, []float64{ChimeFrequency}, audio.tones)
	assert.Equal(t, []string{"Work complete"}, notifier.shown)
	assert.Equal(t, 1, workDone)
}

func TestComplete_BreakSkipsWorkHook(t *testing.T) {
	workDone := 0
	notifier := &fakeNotifier{permission: PermissionGranted}
	dispatcher := NewDispatcher(Config{
		Notifier:              notifier,
		OnWorkSessionComplete: func() { workDone++ },
		Sync:                  true,
	})

	complete(dispatcher, model.ModeShortBreak, settingsWith(false, true))

	assert.Zero(t, workDone)
	assert.Equal(t, []string{"Short Break complete"}, notifier.shown)
}

func TestComplete_SoundDisabled(t *testing.T) {
	audio := &fakeAudio{}
	dispatcher := NewDispatcher(Config{Audio: audio, Sync: true})

	complete(dispatcher, model.ModeWork, settingsWith(false, false))

	assert.Empty(t, audio.tones)
}

func TestNotify_PermissionStates(t *testing.T) {
	cases := []struct {
		name       string
		permission Permission
		answer     Permission
		shown      int
		requests   int
	}{
		{"granted", PermissionGranted, PermissionGranted, 1, 0},
		{"denied", PermissionDenied, PermissionDenied, 0, 0},
		{"default then granted", PermissionDefault, PermissionGranted, 1, 1},
		{"default then denied", PermissionDefault, PermissionDenied, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notifier := &fakeNotifier{permission: tc.permission, answer: tc.answer}
			dispatcher := NewDispatcher(Config{Notifier: notifier, Sync: true})

			complete(dispatcher, model.ModeLongBreak, settingsWith(false, true))

			assert.Len(t, notifier.shown, tc.shown)
			assert.Equal(t, tc.requests, notifier.requests)
		})
	}
}

func TestFailuresAreIsolated(t *testing.T) {
	audio := &fakeAudio{err: errors.New("autoplay blocked")}
	notifier := &fakeNotifier{permission: PermissionGranted}
	workDone := 0
	dispatcher := NewDispatcher(Config{
		Audio:                 audio,
		Notifier:              notifier,
		Vibrator:              panickingVibrator{},
		OnWorkSessionComplete: func() { workDone++ },
		Sync:                  true,
	})

	require.NotPanics(t, func() {
		complete(dispatcher, model.ModeWork, settingsWith(true, true))
	})

	assert.Len(t, audio.tones, 1)
	assert.Len(t, notifier.shown, 1)
	assert.Equal(t, 1, workDone)
}

func TestRequestPermission(t *testing.T) {
	notifier := &fakeNotifier{permission: PermissionDefault, answer: PermissionGranted}
	dispatcher := NewDispatcher(Config{Notifier: notifier})

	dispatcher.Run([]timekeeper.Effect{{Type: timekeeper.EffectRequestPermission}}, model.DefaultSettings())
	dispatcher.Wait()
	assert.Equal(t, 1, notifier.requests)

	dispatcher.Run([]timekeeper.Effect{{Type: timekeeper.EffectRequestPermission}}, model.DefaultSettings())
	dispatcher.Wait()
	assert.Equal(t, 1, notifier.requests, "already decided")
}

func TestRun_AsyncDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	dispatcher := NewDispatcher(Config{
		OnWorkSessionComplete: func() {
			close(started)
			<-release
		},
	})

	dispatcher.Run([]timekeeper.Effect{{Type: timekeeper.EffectWorkComplete}}, model.DefaultSettings())

	<-started
	close(release)
	dispatcher.Wait()
}

func TestRun_NilSinks(t *testing.T) {
	dispatcher := NewDispatcher(Config{Sync: true})
	assert.NotPanics(t, func() {
		complete(dispatcher, model.ModeWork, settingsWith(true, true))
		dispatcher.Run([]timekeeper.Effect{{Type: "bogus"}}, model.DefaultSettings())
	})
}
