package core

import (
	"fmt"

	"fmm/internal/domain"
)

// ProfileManager tracks named, independent mod lists and the current
// profile selection. It only manipulates the in-memory structure; the
// Service drives the file-level switch protocol and persistence.
type ProfileManager struct {
	profiles []domain.Profile
	current  string
}

// NewProfileManager creates a profile manager over loaded state. An empty
// profile list is seeded with the Default profile; a dangling current
// pointer falls back to the first profile.
func NewProfileManager(profiles []domain.Profile, current string) *ProfileManager {
	if len(profiles) == 0 {
		profiles = []domain.Profile{{Name: domain.DefaultProfileName}}
	}
	pm := &ProfileManager{profiles: profiles, current: current}
	if pm.Profile(current) == nil {
		pm.current = profiles[0].Name
	}
	return pm
}

// Profile returns the profile with the given name, or nil.
func (pm *ProfileManager) Profile(name string) *domain.Profile {
	for i := range pm.profiles {
		if pm.profiles[i].Name == name {
			return &pm.profiles[i]
		}
	}
	return nil
}

// Profiles returns all profiles for persistence.
func (pm *ProfileManager) Profiles() []domain.Profile {
	return pm.profiles
}

// Names returns all profile names in order.
func (pm *ProfileManager) Names() []string {
	names := make([]string, len(pm.profiles))
	for i, p := range pm.profiles {
		names[i] = p.Name
	}
	return names
}

// Current returns the name of the current profile.
func (pm *ProfileManager) Current() string {
	return pm.current
}

// Create adds a new empty profile.
func (pm *ProfileManager) Create(name string) error {
	if pm.Profile(name) != nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileExists, name)
	}
	pm.profiles = append(pm.profiles, domain.Profile{Name: name})
	return nil
}

// Delete removes a profile. The current profile cannot be deleted.
func (pm *ProfileManager) Delete(name string) error {
	if name == pm.current {
		return domain.ErrDeleteCurrentProfile
	}
	for i := range pm.profiles {
		if pm.profiles[i].Name == name {
			pm.profiles = append(pm.profiles[:i], pm.profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
}

// Rename renames a profile, following the current pointer if needed.
func (pm *ProfileManager) Rename(oldName, newName string) error {
	if pm.Profile(newName) != nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileExists, newName)
	}
	profile := pm.Profile(oldName)
	if profile == nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, oldName)
	}

	profile.Name = newName
	if pm.current == oldName {
		pm.current = newName
	}
	return nil
}

// Switch changes the current profile pointer. File-level restore and
// re-deploy around the switch is the Service's responsibility.
func (pm *ProfileManager) Switch(name string) error {
	if pm.Profile(name) == nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	pm.current = name
	return nil
}

// CurrentMods returns the current profile's mod list.
func (pm *ProfileManager) CurrentMods() []domain.Mod {
	profile := pm.Profile(pm.current)
	if profile == nil {
		return nil
	}
	return profile.Mods
}

// SetCurrentMods replaces the current profile's mod list.
func (pm *ProfileManager) SetCurrentMods(mods []domain.Mod) {
	if profile := pm.Profile(pm.current); profile != nil {
		profile.Mods = mods
	}
}
