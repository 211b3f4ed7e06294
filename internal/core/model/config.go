package model

import "time"

// Settings contains the user preferences that drive the Keeper state machine.
type Settings struct {
	Work                  time.Duration
	ShortBreak            time.Duration
	LongBreak             time.Duration
	RoundsBeforeLongBreak int

	AutoStart            bool
	SoundEnabled         bool
	NotificationsEnabled bool

	// IdlePauseAfter pauses a running work session once the user has been
	// idle this long. Zero disables the check.
	IdlePauseAfter time.Duration
}

// DefaultSettings returns the classic 25/5/15 cycle with a long break every
// fourth work session.
func DefaultSettings() Settings {
	return Settings{
		Work:                  25 * time.Minute,
		ShortBreak:            5 * time.Minute,
		LongBreak:             15 * time.Minute,
		RoundsBeforeLongBreak: 4,
		AutoStart:             false,
		SoundEnabled:          true,
		NotificationsEnabled:  false,
	}
}

// Duration returns the configured length of a session in the given mode.
func (settings Settings) Duration(mode Mode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreak
	case ModeLongBreak:
		return settings.LongBreak
	default:
		return settings.Work
	}
}

// SettingsPatch is a partial Settings update. Nil fields are left untouched.
type SettingsPatch struct {
	Work                  *time.Duration
	ShortBreak            *time.Duration
	LongBreak             *time.Duration
	RoundsBeforeLongBreak *int
	AutoStart             *bool
	SoundEnabled          *bool
	NotificationsEnabled  *bool
	IdlePauseAfter        *time.Duration
}

// Apply shallow-merges the patch over settings and returns the result.
func (patch SettingsPatch) Apply(settings Settings) Settings {
	if patch.Work != nil {
		settings.Work = *patch.Work
	}
	if patch.ShortBreak != nil {
		settings.ShortBreak = *patch.ShortBreak
	}
	if patch.LongBreak != nil {
		settings.LongBreak = *patch.LongBreak
	}
	if patch.RoundsBeforeLongBreak != nil {
		settings.RoundsBeforeLongBreak = *patch.RoundsBeforeLongBreak
	}
	if patch.AutoStart != nil {
		settings.AutoStart = *patch.AutoStart
	}
	if patch.SoundEnabled != nil {
		settings.SoundEnabled = *patch.SoundEnabled
	}
	if patch.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.IdlePauseAfter != nil {
		settings.IdlePauseAfter = *patch.IdlePauseAfter
	}
	return settings
}

// IsEmpty reports whether the patch changes nothing.
func (patch SettingsPatch) IsEmpty() bool {
	return patch == SettingsPatch{}
}

// PatchFrom returns a patch that sets every field to the value in settings.
func PatchFrom(settings Settings) SettingsPatch {
	return SettingsPatch{
		Work:                  &settings.Work,
		ShortBreak:            &settings.ShortBreak,
		LongBreak:             &settings.LongBreak,
		RoundsBeforeLongBreak: &settings.RoundsBeforeLongBreak,
		AutoStart:             &settings.AutoStart,
		SoundEnabled:          &settings.SoundEnabled,
		NotificationsEnabled:  &settings.NotificationsEnabled,
		IdlePauseAfter:        &settings.IdlePauseAfter,
	}
}
