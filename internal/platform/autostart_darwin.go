//go:build darwin

package platform

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "com.focusdeck." + appSlug(appName)
}

// autostartEntryPath points at the per-user LaunchAgents directory.
func (service *platformService) autostartEntryPath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist"), nil
}

func autostartEntry(appName, execPath string) string {
	var plist bytes.Buffer
	plist.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>`)
	_ = xml.EscapeText(&plist, []byte(launchAgentLabel(appName)))
	plist.WriteString("</string>\n\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range append([]string{execPath}, autostartArgs...) {
		plist.WriteString("\t\t<string>")
		_ = xml.EscapeText(&plist, []byte(arg))
		plist.WriteString("</string>\n")
	}
	plist.WriteString("\t</array>\n\t<key>RunAtLoad</key>\n\t<true/>\n</dict>\n</plist>\n")
	return plist.String()
}
