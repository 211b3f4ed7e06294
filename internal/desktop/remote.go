package desktop

import (
	"fmt"
	"strings"

	"focusdeck/internal/config"
	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/platform"
	"focusdeck/internal/storage"

	"gopkg.in/yaml.v3"
)

// Control commands understood by a running instance in addition to the
// timekeeper commands.
const (
	CommandShow   = "show"
	CommandReload = "reload"
)

// Handler answers control commands from the CLI. Every successful reply is
// the YAML snapshot taken after the command ran.
func Handler(keeper *timekeeper.TimeKeeper, repo *storage.Repository, show func()) platform.CommandHandler {
	return func(command string) (string, error) {
		switch strings.ToLower(strings.TrimSpace(command)) {
		case CommandShow:
			if show != nil {
				show()
			}
		case CommandReload:
			keeper.UpdateSettings(model.PatchFrom(repo.LoadSettings()))
		default:
			if err := keeper.Execute(command); err != nil {
				return "", err
			}
		}
		return EncodeSnapshot(keeper.Snapshot())
	}
}

// Remote sends command to the running instance. It returns
// platform.ErrNotRunning when no instance is listening.
func Remote(command string) (timekeeper.Snapshot, error) {
	reply, err := platform.SendCommand(config.AppName, command)
	if err != nil {
		return timekeeper.Snapshot{}, err
	}
	return DecodeSnapshot(reply)
}

// EncodeSnapshot renders snapshot as YAML.
func EncodeSnapshot(snapshot timekeeper.Snapshot) (string, error) {
	encoded, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(encoded), nil
}

// DecodeSnapshot parses a reply produced by EncodeSnapshot.
func DecodeSnapshot(reply string) (timekeeper.Snapshot, error) {
	var snapshot timekeeper.Snapshot
	if err := yaml.Unmarshal([]byte(reply), &snapshot); err != nil {
		return timekeeper.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}
