package model

import (
	"fmt"
	"time"
)

// Mode identifies the kind of interval a session runs.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Valid reports whether mode is one of the known modes.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

// ParseMode converts a stored mode string.
func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown mode %q", value)
	}
	return mode, nil
}

// Label returns the human-readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

// Subtitle returns the short hint shown under the label.
func (mode Mode) Subtitle() string {
	switch mode {
	case ModeShortBreak:
		return "Relax"
	case ModeLongBreak:
		return "Recharge"
	default:
		return "Focus now"
	}
}

// Session is the single active timer record.
// StartedAt is set iff Running is true.
type Session struct {
	Mode       Mode
	Remaining  time.Duration
	Running    bool
	CycleCount int
	StartedAt  time.Time
}

// AtZeroStopped reports the completion condition watched by the Keeper.
func (session Session) AtZeroStopped() bool {
	return session.Remaining == 0 && !session.Running
}
