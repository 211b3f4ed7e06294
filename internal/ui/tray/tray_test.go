package tray

import (
	"testing"
	"time"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
)

func snapshot(mode model.Mode, cycle int, remaining time.Duration, running bool) timekeeper.Snapshot {
	settings := model.DefaultSettings()
	return timekeeper.Snap(model.Session{
		Mode:       mode,
		Remaining:  remaining,
		Running:    running,
		CycleCount: cycle,
	}, settings)
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Work 24:13 · round 1/4",
		StatusLine(snapshot(model.ModeWork, 0, 24*time.Minute+13*time.Second, true)))
	assert.Equal(t, "Short Break 05:00 · round 2/4 (paused)",
		StatusLine(snapshot(model.ModeShortBreak, 2, 5*time.Minute, false)))
}

func TestRound(t *testing.T) {
	cases := []struct {
		mode  model.Mode
		cycle int
		want  int
	}{
		{model.ModeWork, 0, 1},
		{model.ModeShortBreak, 1, 1},
		{model.ModeWork, 1, 2},
		{model.ModeWork, 3, 4},
		{model.ModeLongBreak, 4, 4},
		{model.ModeWork, 4, 1},
		{model.ModeShortBreak, 0, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round(snapshot(tc.mode, tc.cycle, time.Minute, false)), "%s cycle %d", tc.mode, tc.cycle)
	}
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Start", ToggleLabel(snapshot(model.ModeWork, 0, 25*time.Minute, false)))
	assert.Equal(t, "Pause", ToggleLabel(snapshot(model.ModeWork, 0, 20*time.Minute, true)))
	assert.Equal(t, "Resume", ToggleLabel(snapshot(model.ModeWork, 0, 20*time.Minute, false)))
}

func TestNewWithoutDesktop(t *testing.T) {
	toggled := 0
	manager := New(nil, Callbacks{OnToggle: func() { toggled++ }})

	manager.toggleItem.Action()
	manager.skipItem.Action()
	manager.Update(snapshot(model.ModeWork, 0, 20*time.Minute, true))

	assert.Equal(t, 1, toggled)
	assert.Equal(t, "Pause", manager.toggleItem.Label)
	assert.Equal(t, "Skip to Short Break", manager.skipItem.Label)
	assert.True(t, manager.soundItem.Checked)
	assert.False(t, manager.autoItem.Checked)
}

func TestNotificationsItem(t *testing.T) {
	toggled := 0
	manager := New(nil, Callbacks{OnToggleNotify: func() { toggled++ }})

	manager.notifyItem.Action()
	assert.Equal(t, 1, toggled)

	current := snapshot(model.ModeWork, 0, 25*time.Minute, false)
	current.NotificationsEnabled = true
	manager.Update(current)
	assert.True(t, manager.notifyItem.Checked)
}
