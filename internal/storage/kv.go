// Package storage persists focusdeck records in a synchronous key/value store.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Record keys.
const (
	KeySettings = "pomodoro_settings"
	KeySession  = "pomodoro_state"
	KeyFocus    = "daily_focus"
	KeyTodos    = "todo_list"
)

// Backend names accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrCorrupt marks a stored record that cannot be decoded.
	ErrCorrupt = errors.New("corrupt record")
	// ErrInvalidKey rejects keys outside [a-z0-9_].
	ErrInvalidKey = errors.New("invalid key")
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store is a synchronous key/value store. Get reports ok=false for absent keys.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the store for backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "focusdeck.db"))
	case BackendYAML, "":
		return NewFileStore(filepath.Join(dataDir, "state"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// LoadRecord decodes the YAML record under key into out. It reports false
// when the key is absent or empty; undecodable data wraps ErrCorrupt.
func LoadRecord(store Store, key string, out any) (bool, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveRecord encodes value as YAML under key.
func SaveRecord(store Store, key string, value any) error {
	serialized, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(key, serialized); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
