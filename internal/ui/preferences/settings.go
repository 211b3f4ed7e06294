package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusdeck/internal/core/model"
)

// FormValues is the text form of the editable settings.
type FormValues struct {
	WorkMinutes       string
	ShortBreakMinutes string
	LongBreakMinutes  string
	Rounds            string
	IdleMinutes       string
	AutoStart         bool
	Sound             bool
	Notifications     bool
}

// FormFromSettings renders settings into form text.
func FormFromSettings(settings model.Settings) FormValues {
	return FormValues{
		WorkMinutes:       formatMinutes(settings.Work),
		ShortBreakMinutes: formatMinutes(settings.ShortBreak),
		LongBreakMinutes:  formatMinutes(settings.LongBreak),
		Rounds:            strconv.Itoa(settings.RoundsBeforeLongBreak),
		IdleMinutes:       formatMinutes(settings.IdlePauseAfter),
		AutoStart:         settings.AutoStart,
		Sound:             settings.SoundEnabled,
		Notifications:     settings.NotificationsEnabled,
	}
}

// Patch converts the form into a settings patch. Fields that do not parse
// are left out of the patch and reported in invalid.
func (values FormValues) Patch() (patch model.SettingsPatch, invalid []string) {
	if minutes, ok := parsePositiveMinutes(values.WorkMinutes); ok {
		patch.Work = &minutes
	} else {
		invalid = append(invalid, "work")
	}
	if minutes, ok := parsePositiveMinutes(values.ShortBreakMinutes); ok {
		patch.ShortBreak = &minutes
	} else {
		invalid = append(invalid, "short break")
	}
	if minutes, ok := parsePositiveMinutes(values.LongBreakMinutes); ok {
		patch.LongBreak = &minutes
	} else {
		invalid = append(invalid, "long break")
	}
	if rounds, ok := parsePositiveInt(values.Rounds); ok {
		patch.RoundsBeforeLongBreak = &rounds
	} else {
		invalid = append(invalid, "rounds")
	}
	if minutes, ok := parseNonNegativeInt(values.IdleMinutes); ok {
		idle := time.Duration(minutes) * time.Minute
		patch.IdlePauseAfter = &idle
	} else {
		invalid = append(invalid, "idle pause")
	}

	autoStart, sound, notifications := values.AutoStart, values.Sound, values.Notifications
	patch.AutoStart = &autoStart
	patch.SoundEnabled = &sound
	patch.NotificationsEnabled = &notifications
	return patch, invalid
}

func formatMinutes(value time.Duration) string {
	if value%time.Minute == 0 {
		return strconv.Itoa(int(value / time.Minute))
	}
	return strconv.FormatFloat(value.Minutes(), 'f', -1, 64)
}

func parsePositiveMinutes(value string) (time.Duration, bool) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return time.Duration(minutes * float64(time.Minute)).Round(time.Second), true
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

func invalidMessage(invalid []string) string {
	return fmt.Sprintf("Ignored invalid values: %s", strings.Join(invalid, ", "))
}
