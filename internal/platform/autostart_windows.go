//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Windows starts the command stored under the user's Run key at login.
const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func (service *platformService) EnableAutostart(appName, execPath string) error {
	switch {
	case appName == "":
		return fmt.Errorf("enable autostart: %w", errEmptyAppName)
	case execPath == "":
		return fmt.Errorf("enable autostart: %w", errEmptyExecPath)
	}
	if err := runReg("add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", runCommandLine(execPath), "/f"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: %w", errEmptyAppName)
	}
	enabled, err := service.AutostartEnabled(appName)
	if err != nil || !enabled {
		return err
	}
	if err := runReg("delete", registryRunKey, "/v", appName, "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	err := exec.Command("reg", "query", registryRunKey, "/v", appName).Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr):
		return false, nil
	default:
		return false, fmt.Errorf("autostart status: reg query: %w", err)
	}
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// runCommandLine quotes the executable and appends the autostart arguments.
func runCommandLine(execPath string) string {
	return `"` + strings.Trim(execPath, `"`) + `" ` + strings.Join(autostartArgs, " ")
}
