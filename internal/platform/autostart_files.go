//go:build !windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Linux and macOS enable autostart by dropping an entry file into a
// directory the session manager scans at login.

func (service *platformService) EnableAutostart(appName, execPath string) error {
	switch {
	case appName == "":
		return fmt.Errorf("enable autostart: %w", errEmptyAppName)
	case execPath == "":
		return fmt.Errorf("enable autostart: %w", errEmptyExecPath)
	}

	path, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(autostartEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write %s: %w", path, err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: %w", errEmptyAppName)
	}

	path, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove %s: %w", path, err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	path, err := service.autostartEntryPath(appName)
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return fileExists(path)
}
