package timekeeper

import (
	"fmt"
	"time"

	"focusdeck/internal/core/model"
)

// Transition is a new session plus the effects the change requests.
type Transition struct {
	Session model.Session
	Effects []Effect
}

// Fresh returns a paused work session at the start of a cycle.
func Fresh(settings model.Settings) model.Session {
	return model.Session{
		Mode:      model.ModeWork,
		Remaining: floorZero(settings.Work),
	}
}

// NextMode returns the mode that follows mode and the updated cycle count.
// Leaving work credits one completed cycle.
func NextMode(mode model.Mode, cycleCount int, settings model.Settings) (model.Mode, int) {
	if mode != model.ModeWork {
		return model.ModeWork, cycleCount
	}
	rounds := settings.RoundsBeforeLongBreak
	if rounds < 1 {
		rounds = 1
	}
	next := cycleCount + 1
	if next%rounds == 0 {
		return model.ModeLongBreak, next
	}
	return model.ModeShortBreak, next
}

// Resolve reconciles a persisted session with the wall clock. A nil saved
// session starts fresh.
func Resolve(saved *model.Session, settings model.Settings, now time.Time) model.Session {
	if saved == nil || !saved.Mode.Valid() {
		return Fresh(settings)
	}
	session := *saved
	session.Remaining = floorZero(session.Remaining)
	if session.CycleCount < 0 {
		session.CycleCount = 0
	}

	if !session.Running || session.StartedAt.IsZero() {
		session.Running = false
		session.StartedAt = time.Time{}
		return session
	}

	session.Remaining = floorZero(session.Remaining - elapsed(session.StartedAt, now))
	if session.Remaining > 0 {
		session.StartedAt = now
		return session
	}
	session.Running = false
	session.StartedAt = time.Time{}
	return session
}

// Start begins counting down. A running session is returned unchanged.
func Start(session model.Session, now time.Time) model.Session {
	if session.Running {
		return session
	}
	session.Running = true
	session.StartedAt = now
	return session
}

// Pause folds the time elapsed since StartedAt into Remaining and stops.
func Pause(session model.Session, now time.Time) model.Session {
	if !session.Running {
		return session
	}
	session.Remaining = floorZero(session.Remaining - elapsed(session.StartedAt, now))
	session.Running = false
	session.StartedAt = time.Time{}
	return session
}

// Toggle pauses a running session and starts a paused one.
func Toggle(session model.Session, now time.Time) model.Session {
	if session.Running {
		return Pause(session, now)
	}
	return Start(session, now)
}

// Reset discards progress and the cycle count.
func Reset(settings model.Settings) model.Session {
	return Fresh(settings)
}

// Skip moves to the next mode without completion effects.
func Skip(session model.Session, settings model.Settings, now time.Time) model.Session {
	mode, cycle := NextMode(session.Mode, session.CycleCount, settings)
	return enter(mode, cycle, settings, now)
}

// Tick subtracts the time since the previous tick. StartedAt is re-anchored
// to now so Remaining always counts from StartedAt. At zero the session
// stops; completion is handled by the caller.
func Tick(session model.Session, now time.Time) model.Session {
	if !session.Running {
		return session
	}
	session.Remaining = floorZero(session.Remaining - elapsed(session.StartedAt, now))
	if session.Remaining == 0 {
		session.Running = false
		session.StartedAt = time.Time{}
		return session
	}
	session.StartedAt = now
	return session
}

// Complete ends the current session: it lists the boundary effects and
// advances to the next mode.
func Complete(session model.Session, settings model.Settings, now time.Time) Transition {
	completed := session.Mode
	effects := make([]Effect, 0, 4)
	if settings.SoundEnabled {
		effects = append(effects, Effect{Type: EffectChime, Mode: completed})
	}
	effects = append(effects, Effect{Type: EffectVibrate, Mode: completed})
	if settings.NotificationsEnabled {
		effects = append(effects, Effect{
			Type:  EffectNotify,
			Mode:  completed,
			Title: fmt.Sprintf("%s complete", completed.Label()),
			Body:  "Switching to the next session",
		})
	}
	if completed == model.ModeWork {
		effects = append(effects, Effect{Type: EffectWorkComplete, Mode: completed})
	}

	mode, cycle := NextMode(completed, session.CycleCount, settings)
	return Transition{
		Session: enter(mode, cycle, settings, now),
		Effects: effects,
	}
}

// Snap computes the derived view of session under settings.
func Snap(session model.Session, settings model.Settings) Snapshot {
	duration := floorZero(settings.Duration(session.Mode))
	next, _ := NextMode(session.Mode, session.CycleCount, settings)
	return Snapshot{
		Mode:                  session.Mode,
		Label:                 session.Mode.Label(),
		Subtitle:              session.Mode.Subtitle(),
		Remaining:             session.Remaining,
		SessionDuration:       duration,
		PercentComplete:       percentComplete(session.Remaining, duration),
		Running:               session.Running,
		CycleCount:            session.CycleCount,
		NextMode:              next,
		NextLabel:             next.Label(),
		RoundsBeforeLongBreak: settings.RoundsBeforeLongBreak,
		AutoStart:             settings.AutoStart,
		SoundEnabled:          settings.SoundEnabled,
		NotificationsEnabled:  settings.NotificationsEnabled,
	}
}

// FormatRemaining renders a duration as MM:SS, rounded to the nearest second.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func enter(mode model.Mode, cycle int, settings model.Settings, now time.Time) model.Session {
	session := model.Session{
		Mode:       mode,
		Remaining:  floorZero(settings.Duration(mode)),
		CycleCount: cycle,
	}
	if settings.AutoStart {
		session.Running = true
		session.StartedAt = now
	}
	return session
}

func percentComplete(remaining, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	percent := 100 * (1 - float64(remaining)/float64(duration))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// elapsed never goes negative when the wall clock steps backwards.
func elapsed(from, to time.Time) time.Duration {
	if from.IsZero() {
		return 0
	}
	delta := to.Sub(from)
	if delta < 0 {
		return 0
	}
	return delta
}

func floorZero(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}
