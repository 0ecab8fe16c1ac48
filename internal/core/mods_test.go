package core_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fmm/internal/core"
	"fmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateModName(t *testing.T) {
	existing := []domain.Mod{{Name: "Facepack"}}

	name, err := core.ValidateModName("  New Kits  ", existing)
	require.NoError(t, err)
	assert.Equal(t, "New Kits", name)

	_, err = core.ValidateModName("   ", existing)
	assert.ErrorIs(t, err, domain.ErrEmptyModName)

	_, err = core.ValidateModName("Facepack", existing)
	assert.ErrorIs(t, err, domain.ErrModExists)

	_, err = core.ValidateModName(" Facepack ", existing)
	assert.ErrorIs(t, err, domain.ErrModExists, "trims before comparing")
}

func TestCheckConflicts(t *testing.T) {
	mods := []domain.Mod{
		{Name: "A", Enabled: true, Files: []string{"x.bundle"}},
		{Name: "B", Enabled: false, Files: []string{"x.bundle", "y.bundle"}},
	}

	// Only enabled mods own files; disabled B is invisible to the check.
	conflicts := core.CheckConflicts(mods, []string{"x.bundle", "y.bundle"})
	assert.Equal(t, map[string]string{"x.bundle": "A"}, conflicts)

	conflicts = core.CheckConflicts(mods, []string{"z.bundle"})
	assert.Empty(t, conflicts)
}

func TestModManager_InstallReplacesPriorContents(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)
	srcDir := t.TempDir()

	first := writePayload(t, srcDir, "old.bundle", "old")
	require.NoError(t, mm.InstallMod("Kits", []string{first}))

	second := writePayload(t, srcDir, "new.bundle", "new")
	require.NoError(t, mm.InstallMod("Kits", []string{second}))

	_, err = os.Stat(filepath.Join(mm.StoragePath("Kits"), "old.bundle"))
	assert.True(t, os.IsNotExist(err), "reinstall is a full overwrite, not a merge")
	_, err = os.Stat(filepath.Join(mm.StoragePath("Kits"), "new.bundle"))
	assert.NoError(t, err)
}

func TestModManager_NewModEntry(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)
	srcDir := t.TempDir()

	a := writePayload(t, srcDir, "a.bundle", "12345")
	b := writePayload(t, srcDir, "b.bundle", "123")
	require.NoError(t, mm.InstallMod("Stadium Pack", []string{a, b}))

	mod := mm.NewModEntry("Stadium Pack", []string{a, b})
	assert.Equal(t, "Stadium Pack", mod.Name)
	assert.False(t, mod.Enabled)
	assert.ElementsMatch(t, []string{"a.bundle", "b.bundle"}, mod.Files)
	assert.Equal(t, filepath.Join(mm.StoragePath("Stadium Pack"), "a.bundle"), mod.FilePaths["a.bundle"])
	assert.Equal(t, int64(8), mod.SizeBytes)
	assert.Equal(t, domain.DefaultLoadOrder, mod.LoadOrder)
	assert.False(t, mod.AddedDate.IsZero())
	assert.Equal(t, []string{"Graphics"}, mod.Tags)
}

func TestAutoTagsViaNewModEntry(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name string
		tags []string
	}{
		{"Mega Facepack 2026", []string{"Graphics", "Faces"}},
		{"Premier League Kits", []string{"Graphics", "Database", "Kits"}},
		{"4-3-3 Gegenpress Tactic", []string{"Tactics"}},
		{"Wonderkid Shortlist", []string{"Wonderkids"}},
		{"Something Unrelated", []string{"Other"}},
	}

	for _, tt := range tests {
		mod := mm.NewModEntry(tt.name, nil)
		assert.Equal(t, tt.tags, mod.Tags, "tags for %q", tt.name)
	}
}

func TestModManager_EnableModCopiesFiles(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)
	srcDir, dataDir := t.TempDir(), t.TempDir()

	a := writePayload(t, srcDir, "a.bundle", "payload-a")
	require.NoError(t, mm.InstallMod("M", []string{a}))
	mod := mm.NewModEntry("M", []string{a})

	copied, err := mm.EnableMod(&mod, dataDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bundle"}, copied)

	data, err := os.ReadFile(filepath.Join(dataDir, "a.bundle"))
	require.NoError(t, err)
	assert.Equal(t, "payload-a", string(data))
}

func TestModManager_EnableModFailsFastOnMissingPayload(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)
	srcDir, dataDir := t.TempDir(), t.TempDir()

	a := writePayload(t, srcDir, "a.bundle", "a")
	b := writePayload(t, srcDir, "b.bundle", "b")
	require.NoError(t, mm.InstallMod("M", []string{a, b}))
	mod := mm.NewModEntry("M", []string{a, b})

	// Stored payload disappears after install (corruption/deletion).
	require.NoError(t, os.Remove(mod.FilePaths["b.bundle"]))

	copied, err := mm.EnableMod(&mod, dataDir)
	var missing *domain.MissingPayloadError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "b.bundle", missing.File)
	assert.Equal(t, []string{"a.bundle"}, copied, "files copied before the failure are reported for rollback")
	assert.Equal(t, copied, missing.Copied)
}

func TestModManager_RemoveModFiles(t *testing.T) {
	mm, err := core.NewModManager(t.TempDir())
	require.NoError(t, err)
	srcDir := t.TempDir()

	a := writePayload(t, srcDir, "a.bundle", "a")
	require.NoError(t, mm.InstallMod("M", []string{a}))
	require.NoError(t, mm.RemoveModFiles("M"))

	_, err = os.Stat(mm.StoragePath("M"))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-absent mod is not an error.
	assert.NoError(t, mm.RemoveModFiles("M"))
}
