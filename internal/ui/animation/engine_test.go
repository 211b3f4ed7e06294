package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames []string
}

func (recorder *frameRecorder) update(frame fyne.Resource) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, frame.Name())
}

func (recorder *frameRecorder) snapshot() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]string(nil), recorder.frames...)
}

var (
	alertFrame = fyne.NewStaticResource("alert.svg", []byte("<svg/>"))
	restFrame  = fyne.NewStaticResource("rest.svg", []byte("<svg/>"))
)

func fastConfig(attention time.Duration) Config {
	return Config{
		AlertDuration: Range{Min: 2 * time.Millisecond, Max: 2 * time.Millisecond},
		RestDuration:  Range{Min: 2 * time.Millisecond, Max: 2 * time.Millisecond},
		AttentionFor:  attention,
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	spread := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 50; i++ {
		value := spread.Random(rng)
		assert.GreaterOrEqual(t, value, time.Second)
		assert.Less(t, value, 2*time.Second)
	}
}

func TestAttention_SettlesOnRest(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(20*time.Millisecond), recorder.update)

	engine.Attention(context.Background(), alertFrame, restFrame)

	require.Eventually(t, func() bool {
		frames := recorder.snapshot()
		return len(frames) >= 3 && frames[len(frames)-1] == "rest.svg" && len(frames)%2 == 1
	}, time.Second, 5*time.Millisecond)
	engine.Stop()

	frames := recorder.snapshot()
	assert.Equal(t, "alert.svg", frames[0])
	assert.Equal(t, "rest.svg", frames[len(frames)-1])
}

func TestShow_CancelsAnimation(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(time.Hour), recorder.update)

	engine.Attention(context.Background(), alertFrame, restFrame)
	require.Eventually(t, func() bool { return len(recorder.snapshot()) > 0 }, time.Second, time.Millisecond)

	engine.Show(restFrame)
	settled := len(recorder.snapshot())
	time.Sleep(20 * time.Millisecond)

	frames := recorder.snapshot()
	assert.Len(t, frames, settled, "no frames after Show")
	assert.Equal(t, "rest.svg", frames[len(frames)-1])
}

func TestAttention_ContextCancel(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(time.Hour), recorder.update)
	ctx, cancel := context.WithCancel(context.Background())

	engine.Attention(ctx, alertFrame, restFrame)
	cancel()
	engine.Stop()

	count := len(recorder.snapshot())
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), count)
}
