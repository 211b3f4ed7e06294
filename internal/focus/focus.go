// Package focus tracks the user's main focus for the day and how many work
// sessions they finished today.
package focus

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"focusdeck/internal/storage"

	"github.com/charmbracelet/log"
)

const dateLayout = "2006-01-02"

// ErrEmptyTask rejects a blank focus.
var ErrEmptyTask = errors.New("focus task is empty")

// Focus is today's record. A record from an earlier day is discarded on read.
type Focus struct {
	Date         string `yaml:"date"`
	Task         string `yaml:"task,omitempty"`
	Done         bool   `yaml:"done,omitempty"`
	WorkSessions int    `yaml:"work_sessions,omitempty"`
}

// HasTask reports whether a focus was set today.
func (focus Focus) HasTask() bool {
	return focus.Task != ""
}

// Tracker reads and writes the daily focus record.
type Tracker struct {
	mu     sync.Mutex
	store  storage.Store
	now    func() time.Time
	logger *log.Logger
}

// NewTracker returns a tracker over store. A nil now uses time.Now.
func NewTracker(store storage.Store, logger *log.Logger, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{store: store, now: now, logger: logger}
}

// Today returns the current record, rolled over when the day changed.
func (tracker *Tracker) Today() Focus {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.loadLocked()
}

// SetTask replaces today's focus and clears its done flag.
func (tracker *Tracker) SetTask(task string) (Focus, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return Focus{}, ErrEmptyTask
	}
	return tracker.update(func(focus *Focus) {
		focus.Task = task
		focus.Done = false
	})
}

// ToggleDone flips the done flag of today's focus.
func (tracker *Tracker) ToggleDone() (Focus, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	focus := tracker.loadLocked()
	if !focus.HasTask() {
		return focus, ErrEmptyTask
	}
	focus.Done = !focus.Done
	return focus, tracker.saveLocked(focus)
}

// Clear removes today's focus. The work session count is kept.
func (tracker *Tracker) Clear() (Focus, error) {
	return tracker.update(func(focus *Focus) {
		focus.Task = ""
		focus.Done = false
	})
}

// RecordWorkSession counts one finished work session. It runs as an effect
// hook, so failures are logged rather than returned.
func (tracker *Tracker) RecordWorkSession() {
	focus, err := tracker.update(func(focus *Focus) {
		focus.WorkSessions++
	})
	if err != nil {
		tracker.logger.Warn("failed to record work session", "err", err)
		return
	}
	tracker.logger.Debug("work session recorded", "today", focus.WorkSessions)
}

func (tracker *Tracker) update(change func(focus *Focus)) (Focus, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	focus := tracker.loadLocked()
	change(&focus)
	if err := tracker.saveLocked(focus); err != nil {
		return focus, err
	}
	return focus, nil
}

func (tracker *Tracker) loadLocked() Focus {
	today := tracker.now().Format(dateLayout)
	var focus Focus
	found, err := storage.LoadRecord(tracker.store, storage.KeyFocus, &focus)
	if err != nil {
		tracker.logger.Warn("ignoring focus record", "err", err)
		found = false
	}
	if !found || focus.Date != today || focus.WorkSessions < 0 {
		return Focus{Date: today}
	}
	return focus
}

func (tracker *Tracker) saveLocked(focus Focus) error {
	if err := storage.SaveRecord(tracker.store, storage.KeyFocus, focus); err != nil {
		return fmt.Errorf("save focus: %w", err)
	}
	return nil
}

// Greeting returns the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
