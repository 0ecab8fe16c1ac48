package domain

import "time"

// DefaultLoadOrder is the neutral load order assigned to new mods.
// Load order is used only for display sorting, never for conflict resolution.
const DefaultLoadOrder = 100

// Mod represents an installed modification. Its payload files live in a
// per-mod storage directory; FilePaths maps each payload filename to the
// stored copy.
type Mod struct {
	Name      string
	Enabled   bool
	Files     []string
	FilePaths map[string]string
	Tags      []string
	LoadOrder int
	SizeBytes int64
	AddedDate time.Time
}

// HasFile reports whether the mod replaces the given payload filename.
func (m *Mod) HasFile(name string) bool {
	for _, f := range m.Files {
		if f == name {
			return true
		}
	}
	return false
}

// ModByName returns a pointer to the mod with the given name, or nil.
func ModByName(mods []Mod, name string) *Mod {
	for i := range mods {
		if mods[i].Name == name {
			return &mods[i]
		}
	}
	return nil
}

// EnabledMods returns the mods currently flagged enabled.
func EnabledMods(mods []Mod) []Mod {
	var enabled []Mod
	for _, m := range mods {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}
	return enabled
}
