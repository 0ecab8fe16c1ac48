// Package config persists application state and settings. State (install
// path, profiles, current profile) lives in a JSON file written atomically;
// user settings live in a separate YAML file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fmm/internal/domain"
)

// Manager handles atomic load/save of persisted state.
type Manager struct {
	path string
}

// New creates a config manager for the given config file path.
func New(path string) *Manager {
	return &Manager{path: path}
}

// State is the persisted application state.
type State struct {
	RootPath       string
	Profiles       []domain.Profile
	CurrentProfile string
}

// configFile is the JSON wire format. A legacy config (pre-profiles) has a
// flat "mods" list and no "profiles" key; Load migrates it.
type configFile struct {
	RootPath       *string         `json:"fm_root_path"`
	Profiles       []profileConfig `json:"profiles,omitempty"`
	CurrentProfile string          `json:"current_profile,omitempty"`
	LegacyMods     []modConfig     `json:"mods,omitempty"`
}

type profileConfig struct {
	Name string      `json:"name"`
	Mods []modConfig `json:"mods"`
}

type modConfig struct {
	Name      string            `json:"name"`
	Enabled   bool              `json:"enabled"`
	Files     []string          `json:"files"`
	FilePaths map[string]string `json:"file_paths"`
	AddedDate time.Time         `json:"added_date"`
	Tags      []string          `json:"tags"`
	LoadOrder int               `json:"load_order"`
	SizeBytes int64             `json:"size_bytes"`
}

// Load reads state from disk. A missing or malformed file yields defaults
// (one empty "Default" profile) rather than an error, so a corrupted config
// never blocks startup.
func (m *Manager) Load() *State {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return defaultState()
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaultState()
	}

	state := &State{CurrentProfile: cfg.CurrentProfile}
	if cfg.RootPath != nil {
		state.RootPath = *cfg.RootPath
	}

	if cfg.Profiles == nil {
		// Legacy schema: flat mod list becomes the Default profile.
		state.Profiles = []domain.Profile{{
			Name: domain.DefaultProfileName,
			Mods: modsFromConfig(cfg.LegacyMods),
		}}
		state.CurrentProfile = domain.DefaultProfileName
		return state
	}

	state.Profiles = make([]domain.Profile, len(cfg.Profiles))
	for i, p := range cfg.Profiles {
		state.Profiles[i] = domain.Profile{Name: p.Name, Mods: modsFromConfig(p.Mods)}
	}
	if state.CurrentProfile == "" {
		state.CurrentProfile = domain.DefaultProfileName
	}

	return state
}

// Save writes state to a temp file and renames it over the config file so a
// crash mid-write never leaves a truncated config behind.
func (m *Manager) Save(state *State) error {
	cfg := configFile{
		CurrentProfile: state.CurrentProfile,
		Profiles:       make([]profileConfig, len(state.Profiles)),
	}
	if state.RootPath != "" {
		cfg.RootPath = &state.RootPath
	}
	for i, p := range state.Profiles {
		cfg.Profiles[i] = profileConfig{Name: p.Name, Mods: modsToConfig(p.Mods)}
	}

	data, err := json.MarshalIndent(&cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}

	return nil
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether a config file is present on disk.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return !errors.Is(err, os.ErrNotExist)
}

func defaultState() *State {
	return &State{
		Profiles:       []domain.Profile{{Name: domain.DefaultProfileName}},
		CurrentProfile: domain.DefaultProfileName,
	}
}

func modsFromConfig(cfgs []modConfig) []domain.Mod {
	mods := make([]domain.Mod, len(cfgs))
	for i, c := range cfgs {
		mods[i] = domain.Mod{
			Name:      c.Name,
			Enabled:   c.Enabled,
			Files:     c.Files,
			FilePaths: c.FilePaths,
			AddedDate: c.AddedDate,
			Tags:      c.Tags,
			LoadOrder: c.LoadOrder,
			SizeBytes: c.SizeBytes,
		}
		if mods[i].LoadOrder == 0 {
			mods[i].LoadOrder = domain.DefaultLoadOrder
		}
	}
	return mods
}

func modsToConfig(mods []domain.Mod) []modConfig {
	cfgs := make([]modConfig, len(mods))
	for i, m := range mods {
		cfgs[i] = modConfig{
			Name:      m.Name,
			Enabled:   m.Enabled,
			Files:     m.Files,
			FilePaths: m.FilePaths,
			AddedDate: m.AddedDate,
			Tags:      m.Tags,
			LoadOrder: m.LoadOrder,
			SizeBytes: m.SizeBytes,
		}
	}
	return cfgs
}
