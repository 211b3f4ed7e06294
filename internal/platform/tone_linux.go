//go:build linux

package platform

func tonePlayers() []playerCommand {
	return []playerCommand{
		{name: "paplay", args: []string{fileToken}},
		{name: "pw-play", args: []string{fileToken}},
		{name: "aplay", args: []string{"-q", fileToken}},
	}
}
