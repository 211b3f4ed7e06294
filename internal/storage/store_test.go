package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	memorySQLite, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	diskSQLite, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "focusdeck.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory":        NewMemoryStore(),
		"file":          fileStore,
		"sqlite memory": memorySQLite,
		"sqlite disk":   diskSQLite,
	}
	t.Cleanup(func() {
		for _, store := range stores {
			store.Close()
		}
	})
	return stores
}

func TestStore_GetSetDelete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(KeySession)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(KeySession, []byte("mode: work\n")))
			value, ok, err := store.Get(KeySession)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "mode: work\n", string(value))

			require.NoError(t, store.Set(KeySession, []byte("mode: longBreak\n")))
			value, _, err = store.Get(KeySession)
			require.NoError(t, err)
			assert.Equal(t, "mode: longBreak\n", string(value))

			require.NoError(t, store.Delete(KeySession))
			_, ok, err = store.Get(KeySession)
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, store.Delete(KeySession), "deleting a missing key")
		})
	}
}

func TestStore_RejectsInvalidKeys(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "Upper", "with space"} {
				_, _, err := store.Get(key)
				assert.ErrorIs(t, err, ErrInvalidKey, key)
				assert.ErrorIs(t, store.Set(key, []byte("x")), ErrInvalidKey, key)
				assert.ErrorIs(t, store.Delete(key), ErrInvalidKey, key)
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Set(KeyFocus, value))
	value[0] = 'z'

	got, _, err := store.Get(KeyFocus)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeySettings, []byte("workSeconds: 60\n")))
	require.NoError(t, store.Set(KeySettings, []byte("workSeconds: 90\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeySettings+".yaml", entries[0].Name())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		backend string
		want    any
	}{
		{BackendMemory, &MemoryStore{}},
		{BackendYAML, &FileStore{}},
		{"", &FileStore{}},
		{BackendSQLite, &SQLiteStore{}},
	}
	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			store, err := Open(tc.backend, dir)
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tc.want, store)
		})
	}

	_, err := Open("etcd", dir)
	assert.Error(t, err)
}

func TestLoadRecord_Corrupt(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyTodos, []byte("{not: [closed")))

	var out map[string]any
	found, err := LoadRecord(store, KeyTodos, &out)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadRecord_EmptyIsAbsent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyTodos, nil))

	var out map[string]any
	found, err := LoadRecord(store, KeyTodos, &out)
	require.NoError(t, err)
	assert.False(t, found)
}
