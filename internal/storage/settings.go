package storage

import (
	"time"

	"focusdeck/internal/core/model"
)

// Missing fields keep their defaults, so every field is a pointer.
type yamlSettings struct {
	WorkSeconds           *int64 `yaml:"workSeconds,omitempty"`
	ShortBreakSeconds     *int64 `yaml:"shortBreakSeconds,omitempty"`
	LongBreakSeconds      *int64 `yaml:"longBreakSeconds,omitempty"`
	RoundsBeforeLongBreak *int   `yaml:"roundsBeforeLongBreak,omitempty"`
	AutoStart             *bool  `yaml:"autoStart,omitempty"`
	SoundEnabled          *bool  `yaml:"soundEnabled,omitempty"`
	NotificationsEnabled  *bool  `yaml:"notificationsEnabled,omitempty"`
	IdlePauseSeconds      *int64 `yaml:"idlePauseSeconds,omitempty"`
}

func toYamlSettings(settings model.Settings) yamlSettings {
	return yamlSettings{
		WorkSeconds:           ptr(seconds(settings.Work)),
		ShortBreakSeconds:     ptr(seconds(settings.ShortBreak)),
		LongBreakSeconds:      ptr(seconds(settings.LongBreak)),
		RoundsBeforeLongBreak: ptr(settings.RoundsBeforeLongBreak),
		AutoStart:             ptr(settings.AutoStart),
		SoundEnabled:          ptr(settings.SoundEnabled),
		NotificationsEnabled:  ptr(settings.NotificationsEnabled),
		IdlePauseSeconds:      ptr(seconds(settings.IdlePauseAfter)),
	}
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkSeconds != nil {
		settings.Work = time.Duration(*fileData.WorkSeconds) * time.Second
	}
	if fileData.ShortBreakSeconds != nil {
		settings.ShortBreak = time.Duration(*fileData.ShortBreakSeconds) * time.Second
	}
	if fileData.LongBreakSeconds != nil {
		settings.LongBreak = time.Duration(*fileData.LongBreakSeconds) * time.Second
	}
	if fileData.RoundsBeforeLongBreak != nil {
		settings.RoundsBeforeLongBreak = *fileData.RoundsBeforeLongBreak
	}
	if fileData.AutoStart != nil {
		settings.AutoStart = *fileData.AutoStart
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.IdlePauseSeconds != nil && *fileData.IdlePauseSeconds >= 0 {
		settings.IdlePauseAfter = time.Duration(*fileData.IdlePauseSeconds) * time.Second
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func ptr[T any](value T) *T {
	return &value
}
