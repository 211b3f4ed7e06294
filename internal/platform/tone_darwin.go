//go:build darwin

package platform

func tonePlayers() []playerCommand {
	return []playerCommand{
		{name: "afplay", args: []string{fileToken}},
	}
}
