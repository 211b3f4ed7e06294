package timekeeper

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Handle cancels a scheduled repeating callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler arms repeating callbacks.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Handle
}

// TickerScheduler runs each schedule on its own goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

// NewTickerScheduler returns the production scheduler.
func NewTickerScheduler() TickerScheduler {
	return TickerScheduler{}
}

// Schedule calls fn every interval until the handle is cancelled.
func (TickerScheduler) Schedule(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
