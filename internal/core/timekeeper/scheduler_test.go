package timekeeper

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerScheduler_FiresAtInterval(t *testing.T) {
	var calls atomic.Int32
	handle := NewTickerScheduler().Schedule(10*time.Millisecond, func() {
		calls.Add(1)
	})
	defer handle.Cancel()

	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestTickerScheduler_CancelStopsCallbacks(t *testing.T) {
	var calls atomic.Int32
	handle := NewTickerScheduler().Schedule(5*time.Millisecond, func() {
		calls.Add(1)
	})
	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, time.Second, time.Millisecond)

	handle.Cancel()
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)

	// one callback may already have been running when Cancel returned
	assert.LessOrEqual(t, calls.Load(), stopped+1)
}

func TestTickerScheduler_CancelIsIdempotent(t *testing.T) {
	handle := NewTickerScheduler().Schedule(time.Hour, func() {})

	assert.NotPanics(t, func() {
		handle.Cancel()
		handle.Cancel()
	})
}

func TestTickerScheduler_NonPositiveIntervalUsesOneSecond(t *testing.T) {
	var calls atomic.Int32
	started := time.Now()
	handle := NewTickerScheduler().Schedule(0, func() {
		calls.Add(1)
	})
	defer handle.Cancel()

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load(), "a zero interval must not spin")

	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(started), 900*time.Millisecond)
}
