package backup_test

import (
	"os"
	"path/filepath"
	"testing"

	"fmm/internal/storage/backup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*backup.Store, string) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := backup.New(t.TempDir(), dataDir)
	require.NoError(t, err)
	return store, dataDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStore_FirstWriteWins(t *testing.T) {
	store, dataDir := newStore(t)
	livePath := filepath.Join(dataDir, "ui.bundle")
	writeFile(t, livePath, "v1")

	result := store.BackupFiles([]string{"ui.bundle"})
	assert.Equal(t, 1, result.Count())
	assert.True(t, result.OK())

	// The live file changes (a mod overwrote it); a second backup request
	// must not clobber the stored original.
	writeFile(t, livePath, "v2")
	result = store.BackupFiles([]string{"ui.bundle"})
	assert.Equal(t, 0, result.Count())
	assert.True(t, result.OK())

	restore := store.RestoreFiles([]string{"ui.bundle"})
	require.True(t, restore.OK())
	assert.Equal(t, "v1", readFile(t, livePath))
}

func TestStore_BackupSkipsAbsentSource(t *testing.T) {
	store, _ := newStore(t)

	// A mod introducing a brand-new file has no original to preserve.
	result := store.BackupFiles([]string{"new.bundle"})
	assert.Equal(t, 0, result.Count())
	assert.True(t, result.OK())
	assert.False(t, store.Has("new.bundle"))
}

func TestStore_RestoreMissingBackup(t *testing.T) {
	store, dataDir := newStore(t)
	writeFile(t, filepath.Join(dataDir, "a.bundle"), "original")
	store.BackupFiles([]string{"a.bundle"})

	result := store.RestoreFiles([]string{"a.bundle", "b.bundle"})
	assert.False(t, result.OK())
	assert.Equal(t, []string{"b.bundle"}, result.Missing)
	assert.Equal(t, []string{"a.bundle"}, result.Restored)
	assert.Error(t, result.Err())
}

func TestStore_RestoreAll(t *testing.T) {
	store, dataDir := newStore(t)
	for _, name := range []string{"a.bundle", "b.bundle", "c.bundle"} {
		writeFile(t, filepath.Join(dataDir, name), "orig-"+name)
	}
	store.BackupFiles([]string{"a.bundle", "b.bundle", "c.bundle"})

	// Mods overwrite everything.
	for _, name := range []string{"a.bundle", "b.bundle", "c.bundle"} {
		writeFile(t, filepath.Join(dataDir, name), "modded")
	}

	result := store.RestoreAll()
	assert.Equal(t, 3, result.Count())
	assert.True(t, result.OK())
	for _, name := range []string{"a.bundle", "b.bundle", "c.bundle"} {
		assert.Equal(t, "orig-"+name, readFile(t, filepath.Join(dataDir, name)))
	}
}

func TestStore_CountAndClear(t *testing.T) {
	store, dataDir := newStore(t)
	assert.False(t, store.HasBackups())
	assert.Equal(t, 0, store.Count())

	writeFile(t, filepath.Join(dataDir, "a.bundle"), "x")
	writeFile(t, filepath.Join(dataDir, "b.bundle"), "y")
	store.BackupFiles([]string{"a.bundle", "b.bundle"})

	assert.True(t, store.HasBackups())
	assert.Equal(t, 2, store.Count())
	assert.True(t, store.Has("a.bundle"))

	require.NoError(t, store.Clear())
	assert.False(t, store.HasBackups())
	assert.Equal(t, 0, store.Count())

	// The store keeps working after a clear.
	result := store.BackupFiles([]string{"a.bundle"})
	assert.Equal(t, 1, result.Count())
}

func TestStore_BackupFailureIsCollected(t *testing.T) {
	store, dataDir := newStore(t)

	// A directory where a file is expected forces a copy error.
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "bad.bundle"), 0755))
	writeFile(t, filepath.Join(dataDir, "good.bundle"), "ok")

	result := store.BackupFiles([]string{"bad.bundle", "good.bundle"})
	assert.Equal(t, 1, result.Count())
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "bad.bundle", result.Failed[0].Name)
	assert.True(t, store.Has("good.bundle"), "batch continues past failures")
}
