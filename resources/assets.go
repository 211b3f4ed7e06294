// Package resources embeds the application icons.
package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const iconDir = "icons/"

// Icon file names.
const (
	IconApp    = "app.svg"
	IconWork   = "work.svg"
	IconBreak  = "break.svg"
	IconPaused = "paused.svg"
	IconAlert  = "alert.svg"
)

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns the named icon as a Fyne resource. Resources are cached so
// repeated tray updates hand fyne the same value.
func Icon(fileName string) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}
	data, err := iconFS.ReadFile(iconDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load icon %s: %w", fileName, err)
	}
	resource, _ := iconCache.LoadOrStore(fileName, fyne.NewStaticResource(fileName, data))
	return resource.(fyne.Resource), nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}
