package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusdeck/internal/core/timekeeper"
)

// IdleProvider returns the duration since last user input. It satisfies
// timekeeper.IdleChecker.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from ioreg output.
func parseHIDIdleTime(output []byte) (time.Duration, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"HIDIdleTime"`) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		idleNanos, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		if idleNanos < 0 {
			idleNanos = 0
		}
		return time.Duration(idleNanos), nil
	}
	return 0, timekeeper.ErrIdleUnsupported
}

// parseIdleMillis reads a bare millisecond count, as printed by xprintidle.
func parseIdleMillis(output []byte) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	return time.Duration(max(idleMillis, 0)) * time.Millisecond, nil
}

// parseMutterIdletime reads the GVariant reply of GetIdletime, e.g.
// "(uint64 12345,)", in milliseconds.
func parseMutterIdletime(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	value = strings.TrimPrefix(value, "(")
	value = strings.TrimSuffix(value, ")")
	value = strings.TrimSuffix(value, ",")
	value = strings.TrimPrefix(value, "uint64 ")
	return parseIdleMillis([]byte(value))
}
