package tray

import (
	"fmt"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle          func()
	OnSkip            func()
	OnReset           func()
	OnToggleSound     func()
	OnToggleAutoStart func()
	OnToggleNotify    func()
	OnShowTimer       func()
	OnPreferences     func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	soundItem  *fyne.MenuItem
	autoItem   *fyne.MenuItem
	notifyItem *fyne.MenuItem
	timerItem  *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.skipItem = fyne.NewMenuItem("Skip", invoke(&manager.callbacks.OnSkip))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.soundItem = fyne.NewMenuItem("Sound", invoke(&manager.callbacks.OnToggleSound))
	manager.autoItem = fyne.NewMenuItem("Auto-start next session", invoke(&manager.callbacks.OnToggleAutoStart))
	manager.notifyItem = fyne.NewMenuItem("Notifications", invoke(&manager.callbacks.OnToggleNotify))
	manager.timerItem = fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShowTimer))
	manager.prefsItem = fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// Update reflects a timer snapshot in the menu. Call it on the UI goroutine.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	manager.statusItem.Label = StatusLine(snapshot)
	manager.toggleItem.Label = ToggleLabel(snapshot)
	manager.skipItem.Label = "Skip to " + snapshot.NextLabel
	manager.soundItem.Checked = snapshot.SoundEnabled
	manager.autoItem.Checked = snapshot.AutoStart
	manager.notifyItem.Checked = snapshot.NotificationsEnabled
	manager.refreshMenu()
}

// SetIcon replaces the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("focusdeck",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.soundItem,
		manager.autoItem,
		manager.notifyItem,
		fyne.NewMenuItemSeparator(),
		manager.timerItem,
		manager.prefsItem,
		manager.quitItem,
	))
}

// StatusLine summarizes a snapshot, e.g. "Work 24:13 · round 2/4".
func StatusLine(snapshot timekeeper.Snapshot) string {
	status := fmt.Sprintf("%s %s · round %d/%d",
		snapshot.Label,
		timekeeper.FormatRemaining(snapshot.Remaining),
		Round(snapshot),
		max(snapshot.RoundsBeforeLongBreak, 1),
	)
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

// Round is the 1-based position within the long-break cycle of the current
// work session, or of the one a break follows.
func Round(snapshot timekeeper.Snapshot) int {
	rounds := max(snapshot.RoundsBeforeLongBreak, 1)
	if snapshot.Mode == model.ModeWork {
		return snapshot.CycleCount%rounds + 1
	}
	if snapshot.CycleCount == 0 {
		return 1
	}
	return (snapshot.CycleCount-1)%rounds + 1
}

// ToggleLabel names the action the run toggle performs.
func ToggleLabel(snapshot timekeeper.Snapshot) string {
	switch {
	case snapshot.Running:
		return "Pause"
	case snapshot.Remaining < snapshot.SessionDuration && snapshot.Remaining > 0:
		return "Resume"
	default:
		return "Start"
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
