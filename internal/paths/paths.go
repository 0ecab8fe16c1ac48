// Package paths resolves and validates the game installation and its
// .bundle data directory across operating systems.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fmm/internal/domain"
)

// InstallDirName is the Steam folder name of the game installation.
const InstallDirName = "Football Manager 26"

// Manager resolves installation and data paths for the host OS.
type Manager struct {
	goos string
	home string
}

// New creates a path manager for the current OS.
func New() *Manager {
	home, _ := os.UserHomeDir()
	return &Manager{goos: runtime.GOOS, home: home}
}

// NewForOS creates a path manager for a specific OS rooted at home.
// Used by tests to exercise per-OS path layouts.
func NewForOS(goos, home string) *Manager {
	return &Manager{goos: goos, home: home}
}

// DetectInstallation probes common Steam library locations and returns the
// first valid installation root, or "" if none is found.
func (m *Manager) DetectInstallation() string {
	for _, root := range m.candidateRoots() {
		if m.ValidateInstallation(root) {
			return root
		}
	}
	return ""
}

// candidateRoots lists well-known Steam library paths per OS.
func (m *Manager) candidateRoots() []string {
	switch m.goos {
	case "windows":
		return []string{
			filepath.Join(`C:\Program Files (x86)\Steam\steamapps\common`, InstallDirName),
			filepath.Join(`D:\SteamLibrary\steamapps\common`, InstallDirName),
			filepath.Join(`E:\SteamLibrary\steamapps\common`, InstallDirName),
		}
	case "darwin":
		return []string{
			filepath.Join(m.home, "Library/Application Support/Steam/steamapps/common", InstallDirName),
		}
	default:
		return []string{
			filepath.Join(m.home, ".local/share/Steam/steamapps/common", InstallDirName),
			filepath.Join(m.home, ".steam/steam/steamapps/common", InstallDirName),
			filepath.Join(m.home, ".var/app/com.valvesoftware.Steam/.local/share/Steam/steamapps/common", InstallDirName),
		}
	}
}

// ValidateInstallation reports whether root contains a valid installation,
// i.e. the root exists and its data directory resolves.
func (m *Manager) ValidateInstallation(root string) bool {
	if root == "" {
		return false
	}
	if _, err := os.Stat(root); err != nil {
		return false
	}
	return m.DataPath(root) != ""
}

// DataPath returns the OS-specific directory holding .bundle files inside
// the installation, or "" if it does not exist.
func (m *Manager) DataPath(root string) string {
	if root == "" {
		return ""
	}

	dataPath := filepath.Join(root, DataSubdir(m.goos))

	info, err := os.Stat(dataPath)
	if err != nil || !info.IsDir() {
		return ""
	}
	return dataPath
}

// DataSubdir returns the relative path from the installation root to the
// .bundle directory for the given OS.
func DataSubdir(goos string) string {
	switch goos {
	case "windows":
		return filepath.Join("fm_Data", "StreamingAssets", "aa", "StandaloneWindows64")
	case "darwin":
		return filepath.Join("fm.app", "Contents", "Resources", "Data", "StreamingAssets", "aa", "StandaloneOSX")
	default:
		return filepath.Join("fm_Data", "StreamingAssets", "aa", "StandaloneLinux64")
	}
}

// ValidateSelection validates a user-selected folder, correcting the common
// case where the parent of the install folder was chosen. Returns the
// corrected root path.
func (m *Manager) ValidateSelection(selected string) (string, error) {
	if !containsInstallDir(selected) {
		nested := filepath.Join(selected, InstallDirName)
		if _, err := os.Stat(nested); err != nil {
			return "", fmt.Errorf("%w: select the %q folder under Steam/steamapps/common", domain.ErrInvalidInstall, InstallDirName)
		}
		selected = nested
	}

	if _, err := os.Stat(selected); err != nil {
		return "", fmt.Errorf("%w: %s does not exist", domain.ErrInvalidInstall, selected)
	}

	if m.DataPath(selected) == "" {
		return "", fmt.Errorf("%w: game data files not found under %s", domain.ErrInvalidInstall, selected)
	}

	return selected, nil
}

func containsInstallDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == InstallDirName {
			return true
		}
	}
	return false
}
