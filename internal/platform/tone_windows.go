//go:build windows

package platform

func tonePlayers() []playerCommand {
	return []playerCommand{
		{
			name: "powershell",
			args: []string{
				"-NoProfile",
				"-NonInteractive",
				"-Command",
				"(New-Object Media.SoundPlayer '" + fileToken + "').PlaySync()",
			},
		},
	}
}
