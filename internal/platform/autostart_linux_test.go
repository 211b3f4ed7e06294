//go:build linux

package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartEntry(t *testing.T) {
	entry := autostartEntry("focusdeck", "/opt/focus deck/focusdeck")
	assert.Contains(t, entry, "[Desktop Entry]\n")
	assert.Contains(t, entry, "Name=focusdeck\n")
	assert.Contains(t, entry, `Exec="/opt/focus deck/focusdeck" run`+"\n")
	assert.Contains(t, entry, "X-GNOME-Autostart-enabled=true")
}

func TestQuoteExecArg(t *testing.T) {
	assert.Equal(t, "/usr/bin/focusdeck", quoteExecArg("/usr/bin/focusdeck"))
	assert.Equal(t, `"/opt/a b"`, quoteExecArg("/opt/a b"))
	assert.Equal(t, `"/opt/\$HOME/a\"b"`, quoteExecArg(`/opt/$HOME/a"b`))
}

func TestAutostartRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	service := NewService()

	enabled, err := service.AutostartEnabled("focusdeck")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("focusdeck", "/usr/bin/focusdeck"))
	enabled, err = service.AutostartEnabled("focusdeck")
	require.NoError(t, err)
	assert.True(t, enabled)

	configDir, err := service.GetConfigDir()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(configDir, "autostart", "focusdeck.desktop"))

	require.NoError(t, service.DisableAutostart("focusdeck"))
	enabled, err = service.AutostartEnabled("focusdeck")
	require.NoError(t, err)
	assert.False(t, enabled)
}
