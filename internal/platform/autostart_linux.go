//go:build linux

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// autostartEntryPath uses the XDG autostart directory.
func (service *platformService) autostartEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", appSlug(appName)+".desktop"), nil
}

func autostartEntry(appName, execPath string) string {
	command := make([]string, 0, len(autostartArgs)+1)
	command = append(command, quoteExecArg(execPath))
	for _, arg := range autostartArgs {
		command = append(command, quoteExecArg(arg))
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	fmt.Fprintf(&entry, "Type=Application\nName=%s\n", appName)
	entry.WriteString("Comment=Pomodoro focus timer\n")
	fmt.Fprintf(&entry, "Exec=%s\n", strings.Join(command, " "))
	entry.WriteString("Terminal=false\nX-GNOME-Autostart-enabled=true\n")
	return entry.String()
}

// quoteExecArg quotes an Exec key argument containing reserved characters.
func quoteExecArg(arg string) string {
	if !strings.ContainsAny(arg, " \t\"'\\$`") {
		return arg
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`).Replace(arg)
	return `"` + escaped + `"`
}
