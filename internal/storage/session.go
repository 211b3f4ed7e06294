package storage

import (
	"fmt"
	"time"

	"focusdeck/internal/core/model"
)

type yamlSession struct {
	Mode        *string `yaml:"mode,omitempty"`
	RemainingMs *int64  `yaml:"remainingMs,omitempty"`
	IsRunning   *bool   `yaml:"isRunning,omitempty"`
	CycleCount  *int    `yaml:"cycleCount,omitempty"`
	StartedAt   *int64  `yaml:"startedAt,omitempty"`
	// Written for readers of the raw record; recomputed from settings on load.
	SessionDurationMs *int64 `yaml:"sessionDurationMs,omitempty"`
}

func toYamlSession(session model.Session, settings model.Settings) yamlSession {
	record := yamlSession{
		Mode:              ptr(string(session.Mode)),
		RemainingMs:       ptr(session.Remaining.Milliseconds()),
		IsRunning:         ptr(session.Running),
		CycleCount:        ptr(session.CycleCount),
		SessionDurationMs: ptr(settings.Duration(session.Mode).Milliseconds()),
	}
	if session.Running && !session.StartedAt.IsZero() {
		record.StartedAt = ptr(session.StartedAt.UnixMilli())
	}
	return record
}

// toSession merges the record over a fresh work session. Values that no
// session could hold make the whole record corrupt.
func (record yamlSession) toSession(settings model.Settings) (model.Session, error) {
	session := model.Session{
		Mode:      model.ModeWork,
		Remaining: settings.Work,
	}
	if record.Mode != nil {
		mode, err := model.ParseMode(*record.Mode)
		if err != nil {
			return model.Session{}, err
		}
		session.Mode = mode
		session.Remaining = settings.Duration(mode)
	}
	if record.RemainingMs != nil {
		if *record.RemainingMs < 0 {
			return model.Session{}, fmt.Errorf("negative remainingMs %d", *record.RemainingMs)
		}
		session.Remaining = time.Duration(*record.RemainingMs) * time.Millisecond
	}
	if record.CycleCount != nil {
		if *record.CycleCount < 0 {
			return model.Session{}, fmt.Errorf("negative cycleCount %d", *record.CycleCount)
		}
		session.CycleCount = *record.CycleCount
	}
	if record.IsRunning != nil {
		session.Running = *record.IsRunning
	}
	if record.StartedAt != nil && *record.StartedAt > 0 {
		session.StartedAt = time.UnixMilli(*record.StartedAt)
	}
	return session, nil
}
