package timekeeper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand rejects a command name Execute does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Command names accepted by Execute.
const (
	CommandStatus = "status"
	CommandStart  = "start"
	CommandPause  = "pause"
	CommandToggle = "toggle"
	CommandSkip   = "skip"
	CommandReset  = "reset"
)

// Commands lists every command Execute accepts.
var Commands = []string{CommandStatus, CommandStart, CommandPause, CommandToggle, CommandSkip, CommandReset}

// Execute runs the intent named by command. Status changes nothing.
func (keeper *TimeKeeper) Execute(command string) error {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case CommandStatus:
	case CommandStart:
		keeper.Start()
	case CommandPause:
		keeper.Pause()
	case CommandToggle:
		keeper.Toggle()
	case CommandSkip:
		keeper.Skip()
	case CommandReset:
		keeper.Reset()
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, command)
	}
	return nil
}
