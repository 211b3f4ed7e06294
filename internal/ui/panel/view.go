package panel

import (
	"fmt"
	"image/color"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/focus"
)

// View is the text and colour content of the panel for one snapshot.
type View struct {
	Title      string
	Subtitle   string
	Timer      string
	Progress   float64
	Next       string
	Focus      string
	Toggle     string
	Sound      string
	Background color.NRGBA
}

var (
	workColor  = color.NRGBA{R: 186, G: 73, B: 73, A: 255}
	shortColor = color.NRGBA{R: 56, G: 133, B: 138, A: 255}
	longColor  = color.NRGBA{R: 57, G: 112, B: 151, A: 255}
)

// Render builds the panel content.
func Render(snapshot timekeeper.Snapshot, today focus.Focus) View {
	view := View{
		Title:      snapshot.Label,
		Subtitle:   snapshot.Subtitle,
		Timer:      timekeeper.FormatRemaining(snapshot.Remaining),
		Progress:   snapshot.PercentComplete / 100,
		Next:       "Next: " + snapshot.NextLabel,
		Focus:      focusLine(today),
		Toggle:     "Start",
		Sound:      "Sound off",
		Background: modeColor(snapshot.Mode),
	}
	if snapshot.Running {
		view.Toggle = "Pause"
	}
	if snapshot.SoundEnabled {
		view.Sound = "Sound on"
	}
	return view
}

func focusLine(today focus.Focus) string {
	sessions := "no sessions yet"
	switch today.WorkSessions {
	case 0:
	case 1:
		sessions = "1 session"
	default:
		sessions = fmt.Sprintf("%d sessions", today.WorkSessions)
	}
	if !today.HasTask() {
		return "Today: " + sessions
	}
	mark := ""
	if today.Done {
		mark = " ✓"
	}
	return fmt.Sprintf("Focus: %s%s · %s", today.Task, mark, sessions)
}

func modeColor(mode model.Mode) color.NRGBA {
	switch mode {
	case model.ModeShortBreak:
		return shortColor
	case model.ModeLongBreak:
		return longColor
	default:
		return workColor
	}
}

// Action is a keyboard shortcut target.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionReset
	ActionSkip
	ActionToggleSound
)

// ActionForRune maps the panel shortcuts: space, r, n and m.
func ActionForRune(r rune) Action {
	switch r {
	case ' ':
		return ActionToggle
	case 'r', 'R':
		return ActionReset
	case 'n', 'N':
		return ActionSkip
	case 'm', 'M':
		return ActionToggleSound
	default:
		return ActionNone
	}
}
