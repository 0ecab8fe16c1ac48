package core_test

import (
	"testing"

	"fmm/internal/core"
	"fmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileManager_SeedsDefault(t *testing.T) {
	pm := core.NewProfileManager(nil, "")
	assert.Equal(t, []string{"Default"}, pm.Names())
	assert.Equal(t, "Default", pm.Current())
}

func TestProfileManager_DanglingCurrentFallsBack(t *testing.T) {
	pm := core.NewProfileManager([]domain.Profile{{Name: "Main"}}, "Gone")
	assert.Equal(t, "Main", pm.Current())
}

func TestProfileManager_CreateAndDuplicate(t *testing.T) {
	pm := core.NewProfileManager(nil, "Default")

	require.NoError(t, pm.Create("Testing"))
	assert.Equal(t, []string{"Default", "Testing"}, pm.Names())

	assert.ErrorIs(t, pm.Create("Testing"), domain.ErrProfileExists)
}

func TestProfileManager_DeleteCurrentForbidden(t *testing.T) {
	pm := core.NewProfileManager(nil, "Default")
	require.NoError(t, pm.Create("Testing"))

	assert.ErrorIs(t, pm.Delete("Default"), domain.ErrDeleteCurrentProfile)
	assert.ErrorIs(t, pm.Delete("Absent"), domain.ErrProfileNotFound)

	require.NoError(t, pm.Delete("Testing"))
	assert.Equal(t, []string{"Default"}, pm.Names())
}

func TestProfileManager_Rename(t *testing.T) {
	pm := core.NewProfileManager(nil, "Default")
	require.NoError(t, pm.Create("Testing"))

	assert.ErrorIs(t, pm.Rename("Testing", "Default"), domain.ErrProfileExists)
	assert.ErrorIs(t, pm.Rename("Absent", "New"), domain.ErrProfileNotFound)

	// Renaming the current profile follows the current pointer.
	require.NoError(t, pm.Rename("Default", "Main"))
	assert.Equal(t, "Main", pm.Current())
	assert.Nil(t, pm.Profile("Default"))
}

func TestProfileManager_Switch(t *testing.T) {
	pm := core.NewProfileManager(nil, "Default")
	require.NoError(t, pm.Create("Testing"))

	assert.ErrorIs(t, pm.Switch("Absent"), domain.ErrProfileNotFound)

	require.NoError(t, pm.Switch("Testing"))
	assert.Equal(t, "Testing", pm.Current())
}

func TestProfileManager_Isolation(t *testing.T) {
	pm := core.NewProfileManager(nil, "Default")
	require.NoError(t, pm.Create("Testing"))

	pm.SetCurrentMods([]domain.Mod{{Name: "A", Enabled: true, Files: []string{"a.bundle"}}})

	require.NoError(t, pm.Switch("Testing"))
	assert.Empty(t, pm.CurrentMods(), "new profile starts empty")
	pm.SetCurrentMods([]domain.Mod{{Name: "B"}})

	// Mutating Testing's list leaves Default untouched.
	require.NoError(t, pm.Switch("Default"))
	mods := pm.CurrentMods()
	require.Len(t, mods, 1)
	assert.Equal(t, "A", mods[0].Name)
	assert.True(t, mods[0].Enabled)
}
