package platform

import (
	"fmt"
	"os/exec"
	"time"

	"focusdeck/internal/core/timekeeper"
)

type idleProvider struct {
	ioregPath string
}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return &idleProvider{}
	}
	return &idleProvider{ioregPath: path}
}

// IdleDuration reads HIDIdleTime (nanoseconds) from the IOHIDSystem registry entry.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if provider.ioregPath == "" {
		return 0, timekeeper.ErrIdleUnsupported
	}
	output, err := exec.Command(provider.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}
