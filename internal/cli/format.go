package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"focusdeck/internal/core/model"
	"focusdeck/internal/core/timekeeper"
	"focusdeck/internal/focus"
	"focusdeck/internal/todo"
	"focusdeck/internal/ui/tray"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorWork  = lipgloss.Color("#fb4934")
	colorBreak = lipgloss.Color("#8ec07c")
	colorDim   = lipgloss.Color("#928374")
)

var (
	styleWork  = lipgloss.NewStyle().Foreground(colorWork).Bold(true)
	styleBreak = lipgloss.NewStyle().Foreground(colorBreak).Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleBold  = lipgloss.NewStyle().Bold(true)
)

const progressBarWidth = 20

func modeStyle(mode model.Mode) lipgloss.Style {
	if mode == model.ModeWork {
		return styleWork
	}
	return styleBreak
}

func writeStatus(w io.Writer, snapshot timekeeper.Snapshot, today focus.Focus) {
	state := "paused"
	if snapshot.Running {
		state = "running"
	}
	fmt.Fprintf(w, "%s  %s  %s\n",
		modeStyle(snapshot.Mode).Render(snapshot.Label),
		styleBold.Render(timekeeper.FormatRemaining(snapshot.Remaining)),
		styleDim.Render(state),
	)
	fmt.Fprintf(w, "%s %3.0f%%\n", progressBar(snapshot.PercentComplete, progressBarWidth), snapshot.PercentComplete)
	fmt.Fprintf(w, "Round %d/%d · next: %s\n",
		tray.Round(snapshot),
		max(snapshot.RoundsBeforeLongBreak, 1),
		snapshot.NextLabel,
	)
	writeFocusLine(w, today)
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func writeFocusLine(w io.Writer, today focus.Focus) {
	sessions := sessionCount(today.WorkSessions)
	if !today.HasTask() {
		fmt.Fprintf(w, "Today: %s\n", sessions)
		return
	}
	mark := ""
	if today.Done {
		mark = " " + styleBreak.Render("(done)")
	}
	fmt.Fprintf(w, "Focus: %s%s · %s\n", today.Task, mark, sessions)
}

func sessionCount(count int) string {
	switch count {
	case 0:
		return "no work sessions yet"
	case 1:
		return "1 work session"
	default:
		return fmt.Sprintf("%d work sessions", count)
	}
}

func writeSettings(w io.Writer, settings model.Settings) {
	idle := "off"
	if settings.IdlePauseAfter > 0 {
		idle = formatMinutes(settings.IdlePauseAfter)
	}
	rows := [][2]string{
		{"work", formatMinutes(settings.Work)},
		{"short break", formatMinutes(settings.ShortBreak)},
		{"long break", formatMinutes(settings.LongBreak)},
		{"rounds before long break", fmt.Sprint(settings.RoundsBeforeLongBreak)},
		{"auto start", onOff(settings.AutoStart)},
		{"sound", onOff(settings.SoundEnabled)},
		{"notifications", onOff(settings.NotificationsEnabled)},
		{"idle pause", idle},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-26s%s\n", row[0], row[1])
	}
}

func formatMinutes(duration time.Duration) string {
	minutes := duration.Minutes()
	if minutes == float64(int64(minutes)) {
		return fmt.Sprintf("%d min", int64(minutes))
	}
	return duration.String()
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func writeTodos(w io.Writer, items []todo.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No todos.")
		return
	}
	for _, item := range items {
		box := "[ ]"
		text := item.Text
		if item.Completed {
			box = "[x]"
			text = styleDim.Render(text)
		}
		fmt.Fprintf(w, "%s %s  %s\n", box, styleDim.Render(item.ShortID()), text)
	}
}
