package desktop

import (
	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/resources"
)

// indicator picks the tray icon for each timer event. A completion is
// followed by the state change into the next mode, so the alert is held
// until that event arrives and blinks over the new mode's icon.
type indicator struct {
	current      string
	pendingAlert bool
}

// next returns the icon to display, whether it should blink first and
// whether anything needs to change.
func (ind *indicator) next(event timekeeper.Event) (icon string, alert bool, changed bool) {
	switch event.Type {
	case timekeeper.EventComplete:
		ind.pendingAlert = true
		return "", false, false
	case timekeeper.EventProgress, timekeeper.EventIdleError:
		return "", false, false
	}

	icon = iconFor(event.Snapshot)
	if ind.pendingAlert {
		ind.pendingAlert = false
		ind.current = icon
		return icon, true, true
	}
	if icon == ind.current {
		return "", false, false
	}
	ind.current = icon
	return icon, false, true
}

func iconFor(snapshot timekeeper.Snapshot) string {
	switch {
	case !snapshot.Running:
		return resources.IconPaused
	case snapshot.Mode != model.ModeWork:
		return resources.IconBreak
	default:
		return resources.IconWork
	}
}
