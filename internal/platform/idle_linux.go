package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"focusdeck/internal/core/timekeeper"
)

// idleProbe is a command that prints the idle time and its parser.
type idleProbe struct {
	name  string
	args  []string
	parse func([]byte) (time.Duration, error)
}

// mutterProbe asks GNOME Shell, which also works under Wayland.
var mutterProbe = idleProbe{
	name: "gdbus",
	args: []string{
		"call", "--session",
		"--dest", "org.gnome.Mutter.IdleMonitor",
		"--object-path", "/org/gnome/Mutter/IdleMonitor/Core",
		"--method", "org.gnome.Mutter.IdleMonitor.GetIdletime",
	},
	parse: parseMutterIdletime,
}

// xprintidleProbe reads the X11 screensaver extension.
var xprintidleProbe = idleProbe{
	name:  "xprintidle",
	parse: parseIdleMillis,
}

type idleProvider struct {
	path  string
	probe idleProbe
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	probes := []idleProbe{xprintidleProbe, mutterProbe}
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		probes = []idleProbe{mutterProbe}
	}
	for _, probe := range probes {
		if path, err := exec.LookPath(probe.name); err == nil {
			return &idleProvider{path: path, probe: probe}
		}
	}
	return unsupportedIdleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path, provider.probe.args...).Output()
	if err != nil {
		// Wrapping ErrIdleUnsupported turns idle checks off for the process.
		return 0, fmt.Errorf("%w: %s: %v", timekeeper.ErrIdleUnsupported, provider.probe.name, err)
	}
	return provider.probe.parse(output)
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
