package storage

import (
	"errors"
	"fmt"
	"io"

	"focusdeck/internal/core/model"

	"github.com/charmbracelet/log"
)

// Repository stores settings and the session record. It satisfies
// timekeeper.Persister.
type Repository struct {
	store  Store
	logger *log.Logger
}

// NewRepository wraps store. A nil logger discards output.
func NewRepository(store Store, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{store: store, logger: logger}
}

// Store returns the underlying key/value store.
func (repo *Repository) Store() Store {
	return repo.store
}

// LoadSettings returns the stored settings merged over defaults. Absent or
// corrupt records yield the defaults.
func (repo *Repository) LoadSettings() model.Settings {
	settings := model.DefaultSettings()
	var fileData yamlSettings
	found, err := LoadRecord(repo.store, KeySettings, &fileData)
	if err != nil {
		repo.warn("settings", err)
		return settings
	}
	if found {
		applyYamlSettings(&settings, fileData)
	}
	return settings
}

// SaveSettings writes the full settings record.
func (repo *Repository) SaveSettings(settings model.Settings) error {
	return SaveRecord(repo.store, KeySettings, toYamlSettings(settings))
}

// UpdateSettings merges patch over the stored settings, persists and returns
// the result.
func (repo *Repository) UpdateSettings(patch model.SettingsPatch) (model.Settings, error) {
	settings := patch.Apply(repo.LoadSettings())
	if err := repo.SaveSettings(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// LoadSession returns the stored session or nil when there is none usable.
func (repo *Repository) LoadSession(settings model.Settings) *model.Session {
	var record yamlSession
	found, err := LoadRecord(repo.store, KeySession, &record)
	if err != nil {
		repo.warn("session", err)
		return nil
	}
	if !found {
		return nil
	}
	session, err := record.toSession(settings)
	if err != nil {
		repo.warn("session", fmt.Errorf("%w: %s: %v", ErrCorrupt, KeySession, err))
		return nil
	}
	return &session
}

// SaveSession writes the session record.
func (repo *Repository) SaveSession(session model.Session, settings model.Settings) error {
	return SaveRecord(repo.store, KeySession, toYamlSession(session, settings))
}

// ClearSession removes the session record.
func (repo *Repository) ClearSession() error {
	if err := repo.store.Delete(KeySession); err != nil {
		return fmt.Errorf("delete %s: %w", KeySession, err)
	}
	return nil
}

func (repo *Repository) warn(record string, err error) {
	if errors.Is(err, ErrCorrupt) {
		repo.logger.Warn("ignoring corrupt record", "record", record, "err", err)
		return
	}
	repo.logger.Error("failed to read record", "record", record, "err", err)
}
