package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds user-tunable application settings, kept separate from the
// mod/profile state so hand-editing one cannot corrupt the other.
type Settings struct {
	LogFile              string `yaml:"log_file"`
	FingerprintSampleMax int    `yaml:"fingerprint_sample_max"`
}

// LoadSettings reads settings.yaml from the given directory, returning
// defaults when the file does not exist.
func LoadSettings(configDir string) (*Settings, error) {
	settings := &Settings{
		FingerprintSampleMax: 5,
	}

	data, err := os.ReadFile(filepath.Join(configDir, "settings.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	if settings.FingerprintSampleMax <= 0 {
		settings.FingerprintSampleMax = 5
	}

	return settings, nil
}

// Save writes settings to the given directory.
func (s *Settings) Save(configDir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "settings.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}
