package timekeeper

import (
	"time"

	"focusdeck/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventComplete    EventType = "complete"
	EventSettings    EventType = "settings"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Completed is the mode that just ended, set on EventComplete.
	Completed model.Mode
	Message   string
	At        time.Time
}

// EffectType names a side effect requested by a transition.
type EffectType string

const (
	EffectChime             EffectType = "chime"
	EffectVibrate           EffectType = "vibrate"
	EffectNotify            EffectType = "notify"
	EffectWorkComplete      EffectType = "work_complete"
	EffectRequestPermission EffectType = "request_permission"
)

// Effect is a side effect the caller executes outside the state machine.
type Effect struct {
	Type  EffectType
	Mode  model.Mode
	Title string
	Body  string
}

// Snapshot is the read-only view handed to presentation code and to CLI
// clients of a running instance.
type Snapshot struct {
	Mode                  model.Mode    `yaml:"mode"`
	Label                 string        `yaml:"label"`
	Subtitle              string        `yaml:"subtitle"`
	Remaining             time.Duration `yaml:"remaining"`
	SessionDuration       time.Duration `yaml:"session_duration"`
	PercentComplete       float64       `yaml:"percent_complete"`
	Running               bool          `yaml:"running"`
	CycleCount            int           `yaml:"cycle_count"`
	NextMode              model.Mode    `yaml:"next_mode"`
	NextLabel             string        `yaml:"next_label"`
	RoundsBeforeLongBreak int           `yaml:"rounds_before_long_break"`
	AutoStart             bool          `yaml:"auto_start"`
	SoundEnabled          bool          `yaml:"sound_enabled"`
	NotificationsEnabled  bool          `yaml:"notifications_enabled"`
}
