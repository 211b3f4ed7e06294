// Package animation swaps tray icon frames to draw attention at session
// boundaries.
package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	AlertDuration Range
	RestDuration  Range
	// AttentionFor bounds how long Attention keeps blinking.
	AttentionFor time.Duration
}

// DefaultConfig blinks for a few seconds at a relaxed pace.
func DefaultConfig() Config {
	return Config{
		AlertDuration: Range{Min: 450 * time.Millisecond, Max: 550 * time.Millisecond},
		RestDuration:  Range{Min: 350 * time.Millisecond, Max: 450 * time.Millisecond},
		AttentionFor:  6 * time.Second,
	}
}

// Engine drives a single frame sink. Starting a new animation cancels the
// previous one.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(fyne.Resource)
	cancel      context.CancelFunc
	done        chan struct{}
	rng         *rand.Rand
}

// New creates a new animation engine. updateFrame is called from the
// animation goroutine.
func New(config Config, updateFrame func(fyne.Resource)) *Engine {
	return &Engine{
		config:      config,
		updateFrame: updateFrame,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Attention alternates alert and rest frames, then settles on rest.
func (engine *Engine) Attention(ctx context.Context, alert, rest fyne.Resource) {
	engine.start(ctx, func(runCtx context.Context) {
		deadline := time.Now().Add(engine.config.AttentionFor)
		for time.Now().Before(deadline) {
			engine.updateFrame(alert)
			if !sleepWithContext(runCtx, engine.config.AlertDuration.Random(engine.rng)) {
				return
			}
			engine.updateFrame(rest)
			if !sleepWithContext(runCtx, engine.config.RestDuration.Random(engine.rng)) {
				return
			}
		}
		engine.updateFrame(rest)
	})
}

// Show cancels any animation and displays a static frame.
func (engine *Engine) Show(frame fyne.Resource) {
	engine.Stop()
	engine.updateFrame(frame)
}

// Stop terminates any active animation and waits for its goroutine.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
