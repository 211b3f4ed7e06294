package tray

import (
	"focusdeck/internal/core/effects"

	"fyne.io/fyne/v2"
)

// Notifier shows desktop notifications through the fyne app. Desktop hosts
// have no permission prompt, so permission is always granted.
type Notifier struct {
	app fyne.App
}

// NewNotifier wraps app.
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

func (notifier *Notifier) Permission() effects.Permission {
	return effects.PermissionGranted
}

func (notifier *Notifier) RequestPermission() effects.Permission {
	return effects.PermissionGranted
}

func (notifier *Notifier) Show(title, body string) error {
	fyne.Do(func() {
		notifier.app.SendNotification(fyne.NewNotification(title, body))
	})
	return nil
}
