package platform

import (
	"time"

	"focusdeck/internal/core/effects"
)

// NoHaptics is the vibrator for desktop hosts, which have no motor.
type NoHaptics struct{}

func (NoHaptics) Vibrate([]time.Duration) error {
	return effects.ErrUnsupported
}
