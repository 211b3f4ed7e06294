// Package panel renders the floating timer window.
package panel

import (
	"image/color"

	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/focus"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Actions defines button and shortcut handlers.
type Actions struct {
	OnToggle      func()
	OnReset       func()
	OnSkip        func()
	OnToggleSound func()
}

// Window manages the timer panel.
type Window struct {
	window        fyne.Window
	actions       Actions
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	timerLabel    *canvas.Text
	progress      *widget.ProgressBar
	nextLabel     *canvas.Text
	focusLabel    *canvas.Text
	toggleButton  *widget.Button
	soundButton   *widget.Button
}

var textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// New creates the timer panel. It starts hidden.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("focusdeck")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	panel := &Window{
		window:        window,
		actions:       actions,
		background:    canvas.NewRectangle(workColor),
		titleLabel:    newText("Work", 22, true),
		subtitleLabel: newText("Focus now", 14, false),
		timerLabel:    newText("25:00", 56, true),
		progress:      widget.NewProgressBar(),
		nextLabel:     newText("", 13, false),
		focusLabel:    newText("", 13, false),
	}
	panel.progress.Max = 1
	panel.progress.TextFormatter = func() string { return "" }

	panel.toggleButton = widget.NewButton("Start", func() { run(panel.actions.OnToggle) })
	panel.toggleButton.Importance = widget.HighImportance
	resetButton := widget.NewButton("Reset", func() { run(panel.actions.OnReset) })
	skipButton := widget.NewButton("Skip", func() { run(panel.actions.OnSkip) })
	panel.soundButton = widget.NewButton("Sound on", func() { run(panel.actions.OnToggleSound) })

	texts := container.New(&stackLayout{},
		panel.titleLabel,
		panel.subtitleLabel,
		panel.timerLabel,
		panel.nextLabel,
		panel.focusLabel,
	)
	buttons := container.NewGridWithColumns(4, panel.toggleButton, resetButton, skipButton, panel.soundButton)
	content := container.NewBorder(nil, container.NewVBox(panel.progress, buttons), nil, nil, texts)
	window.SetContent(container.NewStack(panel.background, container.NewPadded(content)))

	window.Canvas().SetOnTypedRune(panel.handleRune)
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(360, 320))

	return panel
}

// Show displays the panel.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Update renders a snapshot. Safe to call from any goroutine.
func (panel *Window) Update(snapshot timekeeper.Snapshot, today focus.Focus) {
	view := Render(snapshot, today)
	fyne.Do(func() {
		panel.apply(view)
	})
}

func (panel *Window) apply(view View) {
	panel.background.FillColor = view.Background
	panel.background.Refresh()
	setText(panel.titleLabel, view.Title)
	setText(panel.subtitleLabel, view.Subtitle)
	setText(panel.timerLabel, view.Timer)
	setText(panel.nextLabel, view.Next)
	setText(panel.focusLabel, view.Focus)
	panel.progress.SetValue(view.Progress)
	panel.toggleButton.SetText(view.Toggle)
	panel.soundButton.SetText(view.Sound)
}

func (panel *Window) handleRune(r rune) {
	switch ActionForRune(r) {
	case ActionToggle:
		run(panel.actions.OnToggle)
	case ActionReset:
		run(panel.actions.OnReset)
	case ActionSkip:
		run(panel.actions.OnSkip)
	case ActionToggleSound:
		run(panel.actions.OnToggleSound)
	}
}

func newText(value string, size float32, bold bool) *canvas.Text {
	text := canvas.NewText(value, textColor)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: bold}
	text.TextSize = size
	return text
}

func setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}

func run(handler func()) {
	if handler != nil {
		handler()
	}
}

// stackLayout centres objects in a column with a gap after the timer.
type stackLayout struct{}

const (
	stackGap      = float32(4)
	timerIndex    = 2
	timerGapAfter = float32(14)
)

func (layout *stackLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	total := layout.MinSize(objects).Height
	y := (size.Height - total) / 2
	if y < 0 {
		y = 0
	}
	for index, object := range objects {
		objectSize := object.MinSize()
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, objectSize.Height))
		y += objectSize.Height + gapAfter(index)
	}
}

func (layout *stackLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for index, object := range objects {
		objectSize := object.MinSize()
		if objectSize.Width > width {
			width = objectSize.Width
		}
		height += objectSize.Height
		if index < len(objects)-1 {
			height += gapAfter(index)
		}
	}
	return fyne.NewSize(width, height)
}

func gapAfter(index int) float32 {
	if index == timerIndex {
		return timerGapAfter
	}
	return stackGap
}
