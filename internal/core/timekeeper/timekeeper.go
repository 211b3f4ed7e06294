package timekeeper

import (
	"errors"
	"io"
	"sync"
	"time"

	"focusdeck/internal/core/model"

	"github.com/charmbracelet/log"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

const defaultIdleCheckInterval = 5 * time.Second

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Persister is the durability boundary. Failures are logged, never returned
// to callers of the TimeKeeper.
type Persister interface {
	SaveSession(session model.Session, settings model.Settings) error
	SaveSettings(settings model.Settings) error
}

// EffectRunner executes transition effects. Run must not block on the
// effects themselves.
type EffectRunner interface {
	Run(effects []Effect, settings model.Settings)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval      time.Duration
	IdleCheckInterval time.Duration
	Clock             Clock
	Scheduler         Scheduler
	Persister         Persister
	Effects           EffectRunner
	Logger            *log.Logger
}

// TimeKeeper owns the active session. Every mutation runs under mu, applies a
// pure transition, persists it and arms or cancels the tick handle so a tick
// source exists iff the session is running.
type TimeKeeper struct {
	mu       sync.Mutex
	options  Config
	logger   *log.Logger
	settings model.Settings
	session  model.Session

	tick    Handle
	tickGen uint64

	completing bool
	active     bool
	closed     bool
	// restoredAtZero marks a session loaded at the completion condition.
	restoredAtZero bool

	idleChecker   IdleChecker
	idleDisabled  bool
	lastIdleCheck time.Time

	events []chan Event
}

// New creates a TimeKeeper from persisted state. A nil saved session starts a
// fresh work session. Nothing is armed or dispatched until Activate or the
// first mutation.
func New(settings model.Settings, saved *model.Session, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = defaultIdleCheckInterval
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Scheduler == nil {
		options.Scheduler = NewTickerScheduler()
	}
	logger := options.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	session := Resolve(saved, settings, options.Clock.Now())
	return &TimeKeeper{
		options:        options,
		logger:         logger,
		settings:       settings,
		session:        session,
		restoredAtZero: saved != nil && session.AtZeroStopped(),
	}
}

// SetIdleChecker injects an idle checker.
func (keeper *TimeKeeper) SetIdleChecker(checker IdleChecker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.idleChecker = checker
	keeper.idleDisabled = false
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Activate persists the reconciled session, arms the tick source when it is
// running and completes a session restored at zero.
func (keeper *TimeKeeper) Activate() {
	keeper.mu.Lock()
	if keeper.active || keeper.closed {
		keeper.mu.Unlock()
		return
	}
	effects := keeper.activateLocked()
	settings := keeper.settings
	keeper.mu.Unlock()

	keeper.dispatch(effects, settings)
}

// activateLocked completes a session restored at zero before anything else
// can change it, so the boundary effects belong to the session that ran out.
func (keeper *TimeKeeper) activateLocked() []Effect {
	keeper.active = true
	keeper.persistLocked()
	keeper.syncTickLocked(true)
	keeper.emitLocked(EventStateChange, "", keeper.options.Clock.Now())

	if !keeper.restoredAtZero {
		return nil
	}
	keeper.restoredAtZero = false
	return keeper.completeLocked()
}

// Close cancels the tick source and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.cancelTickLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start resumes or begins the current session.
func (keeper *TimeKeeper) Start() {
	keeper.mutate(func(now time.Time) model.Session {
		return Start(keeper.session, now)
	})
}

// Pause freezes the current session.
func (keeper *TimeKeeper) Pause() {
	keeper.mutate(func(now time.Time) model.Session {
		return Pause(keeper.session, now)
	})
}

// Toggle pauses a running session or starts a paused one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mutate(func(now time.Time) model.Session {
		return Toggle(keeper.session, now)
	})
}

// Reset returns to a fresh work session.
func (keeper *TimeKeeper) Reset() {
	keeper.mutate(func(time.Time) model.Session {
		return Reset(keeper.settings)
	})
}

// Skip ends the current session early and enters the next mode.
func (keeper *TimeKeeper) Skip() {
	keeper.mutate(func(now time.Time) model.Session {
		return Skip(keeper.session, keeper.settings, now)
	})
}

// UpdateSettings merges patch into the settings, persists them and returns
// the result. The running session is kept; a session still at the full
// length of its mode is re-seeded with the new length.
func (keeper *TimeKeeper) UpdateSettings(patch model.SettingsPatch) model.Settings {
	return keeper.updateSettings(func(model.Settings) model.SettingsPatch {
		return patch
	})
}

// ToggleSound flips the chime preference.
func (keeper *TimeKeeper) ToggleSound() model.Settings {
	return keeper.updateSettings(func(current model.Settings) model.SettingsPatch {
		enabled := !current.SoundEnabled
		return model.SettingsPatch{SoundEnabled: &enabled}
	})
}

// ToggleAutoStart flips whether the next session starts on its own.
func (keeper *TimeKeeper) ToggleAutoStart() model.Settings {
	return keeper.updateSettings(func(current model.Settings) model.SettingsPatch {
		enabled := !current.AutoStart
		return model.SettingsPatch{AutoStart: &enabled}
	})
}

// ToggleNotifications flips desktop notifications. Enabling them asks for
// permission without waiting for the answer.
func (keeper *TimeKeeper) ToggleNotifications() model.Settings {
	return keeper.updateSettings(func(current model.Settings) model.SettingsPatch {
		enabled := !current.NotificationsEnabled
		return model.SettingsPatch{NotificationsEnabled: &enabled}
	})
}

func (keeper *TimeKeeper) updateSettings(build func(current model.Settings) model.SettingsPatch) model.Settings {
	keeper.mu.Lock()
	if keeper.closed {
		settings := keeper.settings
		keeper.mu.Unlock()
		return settings
	}
	var restored []Effect
	if !keeper.active {
		restored = keeper.activateLocked()
	}
	previous := keeper.settings
	keeper.settings = build(previous).Apply(previous)
	if keeper.options.Persister != nil {
		if err := keeper.options.Persister.SaveSettings(keeper.settings); err != nil {
			keeper.logger.Warn("save settings", "err", err)
		}
	}

	var effects []Effect
	if !previous.NotificationsEnabled && keeper.settings.NotificationsEnabled {
		effects = append(effects, Effect{Type: EffectRequestPermission})
	}

	session := keeper.session
	if !session.Running && session.Remaining == floorZero(previous.Duration(session.Mode)) {
		session.Remaining = floorZero(keeper.settings.Duration(session.Mode))
	}
	now := keeper.options.Clock.Now()
	effects = append(effects, keeper.applyLocked(session, false, now)...)
	keeper.emitLocked(EventSettings, "", now)
	settings := keeper.settings
	keeper.mu.Unlock()

	keeper.dispatch(restored, previous)
	keeper.dispatch(effects, settings)
	return settings
}

// Settings returns the current settings.
func (keeper *TimeKeeper) Settings() model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.settings
}

// Session returns the raw session record.
func (keeper *TimeKeeper) Session() model.Session {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.session
}

// Snapshot returns the derived view of the current session.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return Snap(keeper.session, keeper.settings)
}

// mutate applies an intent, activating the keeper first if needed. Intents
// begin a new interval, so the tick source is re-armed whenever the result is
// running.
func (keeper *TimeKeeper) mutate(transition func(now time.Time) model.Session) {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	var effects []Effect
	if !keeper.active {
		effects = keeper.activateLocked()
	}
	now := keeper.options.Clock.Now()
	if next := transition(now); next != keeper.session {
		effects = append(effects, keeper.applyLocked(next, true, now)...)
	}
	settings := keeper.settings
	keeper.mu.Unlock()

	keeper.dispatch(effects, settings)
}

func (keeper *TimeKeeper) onTick(generation uint64) {
	keeper.mu.Lock()
	if keeper.closed || generation != keeper.tickGen || !keeper.session.Running {
		keeper.mu.Unlock()
		return
	}
	now := keeper.options.Clock.Now()
	if keeper.session.Mode == model.ModeWork {
		if paused, effects := keeper.idlePauseLocked(now); paused {
			settings := keeper.settings
			keeper.mu.Unlock()
			keeper.dispatch(effects, settings)
			return
		}
	}

	effects := keeper.applyLocked(Tick(keeper.session, now), false, now)
	if keeper.session.Running {
		keeper.emitLocked(EventProgress, "", now)
	}
	settings := keeper.settings
	keeper.mu.Unlock()

	keeper.dispatch(effects, settings)
}

// applyLocked installs next, persists it, syncs the tick source and runs the
// completion watcher. The watcher is edge triggered: it fires only when the
// session moves into the zero-and-stopped condition.
func (keeper *TimeKeeper) applyLocked(next model.Session, rearm bool, now time.Time) []Effect {
	wasAtZero := keeper.session.AtZeroStopped()
	keeper.session = next
	keeper.persistLocked()
	keeper.syncTickLocked(rearm)
	keeper.emitLocked(EventStateChange, "", now)

	if !wasAtZero && next.AtZeroStopped() {
		return keeper.completeLocked()
	}
	return nil
}

func (keeper *TimeKeeper) completeLocked() []Effect {
	if keeper.completing {
		return nil
	}
	keeper.completing = true
	defer func() {
		keeper.completing = false
	}()

	now := keeper.options.Clock.Now()
	completed := keeper.session.Mode
	transition := Complete(keeper.session, keeper.settings, now)
	keeper.logger.Info("session complete", "mode", completed, "cycle", transition.Session.CycleCount, "next", transition.Session.Mode)

	keeper.emitCompleteLocked(completed, now)
	effects := transition.Effects
	return append(effects, keeper.applyLocked(transition.Session, true, now)...)
}

func (keeper *TimeKeeper) idlePauseLocked(now time.Time) (bool, []Effect) {
	if keeper.settings.IdlePauseAfter <= 0 || keeper.idleChecker == nil || keeper.idleDisabled {
		return false, nil
	}
	if !keeper.lastIdleCheck.IsZero() && now.Sub(keeper.lastIdleCheck) < keeper.options.IdleCheckInterval {
		return false, nil
	}
	keeper.lastIdleCheck = now

	idleDuration, err := keeper.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.idleDisabled = true
		}
		keeper.logger.Debug("idle check", "err", err)
		keeper.emitLocked(EventIdleError, err.Error(), now)
		return false, nil
	}
	if idleDuration < keeper.settings.IdlePauseAfter {
		return false, nil
	}

	keeper.logger.Info("pausing idle session", "idle", idleDuration)
	effects := keeper.applyLocked(Pause(keeper.session, now), false, now)
	keeper.emitLocked(EventIdlePause, "idle pause", now)
	return true, effects
}

func (keeper *TimeKeeper) syncTickLocked(rearm bool) {
	if !keeper.session.Running || keeper.closed || !keeper.active {
		keeper.cancelTickLocked()
		return
	}
	if keeper.tick != nil && !rearm {
		return
	}
	keeper.cancelTickLocked()
	generation := keeper.tickGen
	keeper.tick = keeper.options.Scheduler.Schedule(keeper.options.TickInterval, func() {
		keeper.onTick(generation)
	})
}

// cancelTickLocked stops the current tick source and invalidates any tick
// callback already in flight.
func (keeper *TimeKeeper) cancelTickLocked() {
	keeper.tickGen++
	if keeper.tick == nil {
		return
	}
	keeper.tick.Cancel()
	keeper.tick = nil
}

func (keeper *TimeKeeper) persistLocked() {
	if keeper.options.Persister == nil || !keeper.active {
		return
	}
	if err := keeper.options.Persister.SaveSession(keeper.session, keeper.settings); err != nil {
		keeper.logger.Warn("save session", "err", err)
	}
}

func (keeper *TimeKeeper) dispatch(effects []Effect, settings model.Settings) {
	if len(effects) == 0 || keeper.options.Effects == nil {
		return
	}
	keeper.options.Effects.Run(effects, settings)
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, message string, now time.Time) {
	keeper.sendLocked(Event{
		Type:     eventType,
		Snapshot: Snap(keeper.session, keeper.settings),
		Message:  message,
		At:       now,
	})
}

func (keeper *TimeKeeper) emitCompleteLocked(completed model.Mode, now time.Time) {
	keeper.sendLocked(Event{
		Type:      EventComplete,
		Snapshot:  Snap(keeper.session, keeper.settings),
		Completed: completed,
		At:        now,
	})
}

func (keeper *TimeKeeper) sendLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
