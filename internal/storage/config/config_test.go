package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fmm/internal/domain"
	"fmm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoadMissingFileYieldsDefaults(t *testing.T) {
	mgr := config.New(filepath.Join(t.TempDir(), "config.json"))

	state := mgr.Load()
	assert.Empty(t, state.RootPath)
	require.Len(t, state.Profiles, 1)
	assert.Equal(t, "Default", state.Profiles[0].Name)
	assert.Empty(t, state.Profiles[0].Mods)
	assert.Equal(t, "Default", state.CurrentProfile)
}

func TestManager_LoadMalformedFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fm_root_path": "/games/`), 0644))

	state := config.New(path).Load()
	assert.Equal(t, "Default", state.CurrentProfile)
	require.Len(t, state.Profiles, 1)
	assert.Equal(t, "Default", state.Profiles[0].Name)
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	mgr := config.New(path)

	added := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	state := &config.State{
		RootPath: "/games/Football Manager 26",
		Profiles: []domain.Profile{
			{Name: "Default", Mods: []domain.Mod{{
				Name:      "Mega Facepack",
				Enabled:   true,
				Files:     []string{"faces.bundle"},
				FilePaths: map[string]string{"faces.bundle": "/store/Mega Facepack/faces.bundle"},
				Tags:      []string{"Faces"},
				LoadOrder: 100,
				SizeBytes: 2048,
				AddedDate: added,
			}}},
			{Name: "Vanilla Plus"},
		},
		CurrentProfile: "Default",
	}
	require.NoError(t, mgr.Save(state))

	loaded := mgr.Load()
	assert.Equal(t, state.RootPath, loaded.RootPath)
	assert.Equal(t, "Default", loaded.CurrentProfile)
	require.Len(t, loaded.Profiles, 2)

	mod := loaded.Profiles[0].Mods[0]
	assert.Equal(t, "Mega Facepack", mod.Name)
	assert.True(t, mod.Enabled)
	assert.Equal(t, []string{"faces.bundle"}, mod.Files)
	assert.Equal(t, "/store/Mega Facepack/faces.bundle", mod.FilePaths["faces.bundle"])
	assert.Equal(t, []string{"Faces"}, mod.Tags)
	assert.Equal(t, 100, mod.LoadOrder)
	assert.Equal(t, int64(2048), mod.SizeBytes)
	assert.True(t, added.Equal(mod.AddedDate))

	assert.Equal(t, "Vanilla Plus", loaded.Profiles[1].Name)
	assert.Empty(t, loaded.Profiles[1].Mods)
}

func TestManager_LoadMigratesLegacySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{
		"fm_root_path": "/games/fm26",
		"mods": [
			{"name": "Old Mod", "enabled": true, "files": ["x.bundle"],
			 "file_paths": {"x.bundle": "/store/Old Mod/x.bundle"},
			 "tags": ["Other"], "load_order": 100, "size_bytes": 10}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	state := config.New(path).Load()
	assert.Equal(t, "/games/fm26", state.RootPath)
	assert.Equal(t, "Default", state.CurrentProfile)
	require.Len(t, state.Profiles, 1)
	require.Len(t, state.Profiles[0].Mods, 1)
	assert.Equal(t, "Old Mod", state.Profiles[0].Mods[0].Name)
	assert.True(t, state.Profiles[0].Mods[0].Enabled)
}

func TestManager_SaveIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	mgr := config.New(path)

	require.NoError(t, mgr.Save(&config.State{
		Profiles:       []domain.Profile{{Name: "Default"}},
		CurrentProfile: "Default",
	}))

	// The temp file is renamed away, never left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
	assert.True(t, mgr.Exists())
}

func TestManager_LoadDefaultsLoadOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"profiles": [{"name": "Default", "mods": [{"name": "M", "files": []}]}], "current_profile": "Default"}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	state := config.New(path).Load()
	assert.Equal(t, domain.DefaultLoadOrder, state.Profiles[0].Mods[0].LoadOrder)
}
