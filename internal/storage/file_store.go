package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const recordExtension = ".yaml"

// FileStore keeps one YAML file per key in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (store *FileStore) Dir() string {
	return store.dir
}

func (store *FileStore) Get(key string) ([]byte, bool, error) {
	path, err := store.path(key)
	if err != nil {
		return nil, false, err
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read record file: %w", err)
	}
	return rawData, true, nil
}

// Set writes through a temp file and rename so a crash never leaves a
// half-written record.
func (store *FileStore) Set(key string, value []byte) error {
	path, err := store.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(store.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}

func (store *FileStore) Delete(key string) error {
	path, err := store.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove record file: %w", err)
	}
	return nil
}

func (store *FileStore) Close() error {
	return nil
}

func (store *FileStore) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(store.dir, key+recordExtension), nil
}
