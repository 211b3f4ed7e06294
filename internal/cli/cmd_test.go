package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"focusdeck/internal/config"
	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/desktop"
	"focusdeck/internal/focus"
	"focusdeck/internal/logging"
	"focusdeck/internal/platform"
	"focusdeck/internal/storage"
	"focusdeck/internal/todo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	commands []string
	snapshot timekeeper.Snapshot
	err      error
}

func (remote *fakeRemote) send(command string) (timekeeper.Snapshot, error) {
	remote.commands = append(remote.commands, command)
	return remote.snapshot, remote.err
}

type fakePlatform struct {
	enabled  map[string]string
	failWith error
}

func (fake *fakePlatform) GetConfigDir() (string, error) {
	return "/tmp", nil
}

func (fake *fakePlatform) EnableAutostart(appName, execPath string) error {
	if fake.failWith != nil {
		return fake.failWith
	}
	fake.enabled[appName] = execPath
	return nil
}

func (fake *fakePlatform) DisableAutostart(appName string) error {
	delete(fake.enabled, appName)
	return nil
}

func (fake *fakePlatform) AutostartEnabled(appName string) (bool, error) {
	_, ok := fake.enabled[appName]
	return ok, nil
}

// testApp wires an App over an in-memory store with no running instance.
func testApp(t *testing.T) (*App, *fakeRemote) {
	t.Helper()
	store := storage.NewMemoryStore()
	remote := &fakeRemote{err: platform.ErrNotRunning}
	cfg := config.Default()
	cfg.Storage = "memory"
	app := &App{
		Config:   cfg,
		Logger:   logging.Discard(),
		Repo:     storage.NewRepository(store, nil),
		Focus:    focus.NewTracker(store, nil, nil),
		Todos:    todo.NewList(store, nil),
		Platform: &fakePlatform{enabled: map[string]string{}},
		Remote:   remote.send,
		Desktop: func(desktop.Deps) error {
			return errors.New("desktop not available in tests")
		},
	}
	return app, remote
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Timer commands ---

func TestStatus_FreshSession(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)

	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "25:00")
	assert.Contains(t, out, "paused")
	assert.Contains(t, out, "Round 1/4 · next: Short Break")
	assert.Contains(t, out, "Today: no work sessions yet")
}

func TestStart_PersistsRunningSession(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "running")

	saved := app.Repo.LoadSession(app.Repo.LoadSettings())
	require.NotNil(t, saved)
	assert.True(t, saved.Running)
	assert.Equal(t, model.ModeWork, saved.Mode)

	out, err = executeCmd(t, app, "pause")
	require.NoError(t, err)
	assert.Contains(t, out, "paused")
}

func TestSkip_AdvancesMode(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "skip")
	require.NoError(t, err)
	assert.Contains(t, out, "Short Break")
	assert.Contains(t, out, "05:00")

	out, err = executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "25:00")
}

func TestStatus_CompletesSessionThatEndedWhileClosed(t *testing.T) {
	app, _ := testApp(t)
	settings := app.Repo.LoadSettings()
	require.NoError(t, app.Repo.SaveSession(model.Session{Mode: model.ModeWork}, settings))

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)

	assert.Contains(t, out, "Short Break")
	assert.Contains(t, out, "1 work session")
	assert.Equal(t, 1, app.Focus.Today().WorkSessions)
}

func TestTimer_UsesRunningInstance(t *testing.T) {
	app, remote := testApp(t)
	remote.err = nil
	remote.snapshot = timekeeper.Snap(model.Session{
		Mode:      model.ModeLongBreak,
		Remaining: 10 * time.Minute,
		Running:   true,
	}, model.DefaultSettings())

	out, err := executeCmd(t, app, "toggle")
	require.NoError(t, err)

	assert.Equal(t, []string{timekeeper.CommandToggle}, remote.commands)
	assert.Contains(t, out, "Long Break")
	assert.Contains(t, out, "10:00")
	assert.Nil(t, app.Repo.LoadSession(app.Repo.LoadSettings()), "stored state is left to the instance")
}

func TestTimer_RemoteFailure(t *testing.T) {
	app, remote := testApp(t)
	remote.err = errors.New("connection reset")

	_, err := executeCmd(t, app, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestTimer_RejectsArgs(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "start", "now")
	assert.Error(t, err)
}

// --- Settings ---

func TestSettingsShow(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "settings")
	require.NoError(t, err)

	assert.Contains(t, out, "25 min")
	assert.Contains(t, out, "idle pause")
	assert.Contains(t, out, "off")
}

func TestSettingsSet(t *testing.T) {
	app, remote := testApp(t)

	out, err := executeCmd(t, app, "settings", "set", "--work", "50m", "--rounds", "2", "--sound=false", "--idle-pause", "3m")
	require.NoError(t, err)

	settings := app.Repo.LoadSettings()
	assert.Equal(t, 50*time.Minute, settings.Work)
	assert.Equal(t, 5*time.Minute, settings.ShortBreak, "untouched fields keep their value")
	assert.Equal(t, 2, settings.RoundsBeforeLongBreak)
	assert.False(t, settings.SoundEnabled)
	assert.Equal(t, 3*time.Minute, settings.IdlePauseAfter)
	assert.Contains(t, out, "50 min")
	assert.Equal(t, []string{desktop.CommandReload}, remote.commands)
}

func TestSettingsSet_Invalid(t *testing.T) {
	cases := map[string][]string{
		"nothing":        {"settings", "set"},
		"zero work":      {"settings", "set", "--work", "0s"},
		"negative break": {"settings", "set", "--short-break", "-1m"},
		"zero rounds":    {"settings", "set", "--rounds", "0"},
		"negative idle":  {"settings", "set", "--idle-pause", "-5m"},
		"bad duration":   {"settings", "set", "--work", "soon"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			app, _ := testApp(t)

			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Equal(t, model.DefaultSettings(), app.Repo.LoadSettings())
		})
	}
}

// --- Focus ---

func TestFocus(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "focus", "set", "ship", "the", "release")
	require.NoError(t, err)
	assert.Contains(t, out, "Focus: ship the release")

	out, err = executeCmd(t, app, "focus", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "(done)")

	out, err = executeCmd(t, app, "focus")
	require.NoError(t, err)
	assert.Contains(t, out, "Good ")
	assert.Contains(t, out, "ship the release")

	out, err = executeCmd(t, app, "focus", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Today: no work sessions yet")
}

func TestFocus_DoneWithoutTask(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "focus", "done")
	assert.ErrorIs(t, err, focus.ErrEmptyTask)
}

// --- Todo ---

func TestTodo(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos.")

	_, err = executeCmd(t, app, "todo", "add", "write", "tests")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "todo", "add", "review")
	require.NoError(t, err)

	items, err := app.Todos.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)

	out, err = executeCmd(t, app, "todo", "done", items[0].ShortID())
	require.NoError(t, err)
	assert.Contains(t, out, "done")

	out, err = executeCmd(t, app, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "review")

	out, err = executeCmd(t, app, "todo", "clear-done")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 completed.")

	out, err = executeCmd(t, app, "todo", "rm", items[1].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "review")

	items, err = app.Todos.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTodo_Errors(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "todo", "add", "   ")
	assert.ErrorIs(t, err, todo.ErrEmptyText)

	_, err = executeCmd(t, app, "todo", "done", "missing")
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

// --- Autostart ---

func TestAutostart(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "autostart", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Autostart disabled.")

	out, err = executeCmd(t, app, "autostart", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "Autostart enabled.")

	out, err = executeCmd(t, app, "autostart", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Autostart enabled.")

	_, err = executeCmd(t, app, "autostart", "disable")
	require.NoError(t, err)
	enabled, err := app.Platform.AutostartEnabled(config.AppName)
	require.NoError(t, err)
	assert.False(t, enabled)
}

// --- Desktop ---

func TestRoot_StartsDesktop(t *testing.T) {
	app, _ := testApp(t)
	var got desktop.Deps
	app.Desktop = func(deps desktop.Deps) error {
		got = deps
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)

	assert.Same(t, app.Repo, got.Repo)
	assert.Same(t, app.Focus, got.Focus)
	assert.Same(t, app.Config, got.Config)
}

func TestRun_AlreadyRunningShowsTimer(t *testing.T) {
	app, remote := testApp(t)
	remote.err = nil
	app.Desktop = func(desktop.Deps) error {
		return platform.ErrAlreadyRunning
	}

	out, err := executeCmd(t, app, "run")
	require.NoError(t, err)

	assert.Equal(t, []string{desktop.CommandShow}, remote.commands)
	assert.Contains(t, out, "already running")
}

func TestRun_DesktopError(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "run")
	assert.EqualError(t, err, "desktop not available in tests")
}

// --- Setup ---

func TestSetup_LoadsConfiguredStorage(t *testing.T) {
	app := &App{
		Remote: (&fakeRemote{err: platform.ErrNotRunning}).send,
	}
	t.Cleanup(func() {
		assert.NoError(t, app.Close())
	})

	out, err := executeCmd(t, app, "--storage", "sqlite", "--data-dir", t.TempDir(), "--log-level", "error", "status")
	require.NoError(t, err)

	assert.Contains(t, out, "25:00")
	require.NotNil(t, app.Config)
	assert.Equal(t, "sqlite", app.Config.Storage)
	assert.IsType(t, &storage.SQLiteStore{}, app.Repo.Store())
}
