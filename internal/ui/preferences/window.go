package preferences

import (
	"focusdeck/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	onSave        func(model.SettingsPatch)
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	rounds        *widget.Entry
	idle          *widget.Entry
	autoStart     *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	status        *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.SettingsPatch)) *Window {
	window := app.NewWindow("focusdeck Preferences")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		rounds:        widget.NewEntry(),
		idle:          widget.NewEntry(),
		autoStart:     widget.NewCheck("Start the next session automatically", nil),
		sound:         widget.NewCheck("Play a chime when a session ends", nil),
		notifications: widget.NewCheck("Show desktop notifications", nil),
		status:        widget.NewLabel(""),
	}
	prefs.idle.SetPlaceHolder("0 = off")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3,
			widget.NewLabel("Work"), prefs.work, widget.NewLabel("min"),
			widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min"),
			widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min"),
			widget.NewLabel("Long break after"), prefs.rounds, widget.NewLabel("rounds"),
			widget.NewLabel("Pause when idle for"), prefs.idle, widget.NewLabel("min"),
		),
		widget.NewLabelWithStyle("Behaviour", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.autoStart,
		prefs.sound,
		prefs.notifications,
		prefs.status,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(420, 380))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.status.SetText("")
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.apply(FormFromSettings(settings))
}

func (prefs *Window) apply(values FormValues) {
	prefs.work.SetText(values.WorkMinutes)
	prefs.shortBreak.SetText(values.ShortBreakMinutes)
	prefs.longBreak.SetText(values.LongBreakMinutes)
	prefs.rounds.SetText(values.Rounds)
	prefs.idle.SetText(values.IdleMinutes)
	prefs.autoStart.SetChecked(values.AutoStart)
	prefs.sound.SetChecked(values.Sound)
	prefs.notifications.SetChecked(values.Notifications)
}

func (prefs *Window) values() FormValues {
	return FormValues{
		WorkMinutes:       prefs.work.Text,
		ShortBreakMinutes: prefs.shortBreak.Text,
		LongBreakMinutes:  prefs.longBreak.Text,
		Rounds:            prefs.rounds.Text,
		IdleMinutes:       prefs.idle.Text,
		AutoStart:         prefs.autoStart.Checked,
		Sound:             prefs.sound.Checked,
		Notifications:     prefs.notifications.Checked,
	}
}

func (prefs *Window) handleSave() {
	patch, invalid := prefs.values().Patch()
	if prefs.onSave != nil {
		prefs.onSave(patch)
	}
	if len(invalid) > 0 {
		prefs.status.SetText(invalidMessage(invalid))
		return
	}
	prefs.window.Hide()
}
