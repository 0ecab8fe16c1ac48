package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fmm/internal/domain"
)

// ModManager handles per-mod payload storage and the file operations behind
// enable/disable. The mod registry itself is owned by the Service and passed
// into the query helpers below, so no ambient state lives here.
type ModManager struct {
	storageDir string
}

// NewModManager creates a mod manager storing payloads under storageDir,
// one directory per mod name.
func NewModManager(storageDir string) (*ModManager, error) {
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return nil, fmt.Errorf("creating mod storage dir: %w", err)
	}
	return &ModManager{storageDir: storageDir}, nil
}

// StoragePath returns the storage directory for a mod name.
func (m *ModManager) StoragePath(name string) string {
	return filepath.Join(m.storageDir, name)
}

// InstallMod copies payload files into permanent per-mod storage, replacing
// any prior contents for that name.
func (m *ModManager) InstallMod(name string, payloadFiles []string) error {
	storage := m.StoragePath(name)
	if err := os.RemoveAll(storage); err != nil {
		return fmt.Errorf("clearing mod storage: %w", err)
	}
	if err := os.MkdirAll(storage, 0755); err != nil {
		return fmt.Errorf("creating mod storage: %w", err)
	}

	for _, src := range payloadFiles {
		dst := filepath.Join(storage, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("storing %s: %w", filepath.Base(src), err)
		}
	}

	return nil
}

// NewModEntry builds the registry record for an installed mod: auto-derived
// tags, summed stored size, current timestamp, neutral load order.
func (m *ModManager) NewModEntry(name string, payloadFiles []string) domain.Mod {
	storage := m.StoragePath(name)

	mod := domain.Mod{
		Name:      name,
		Tags:      autoTags(name),
		LoadOrder: domain.DefaultLoadOrder,
		AddedDate: time.Now(),
		FilePaths: make(map[string]string, len(payloadFiles)),
	}

	for _, src := range payloadFiles {
		fileName := filepath.Base(src)
		stored := filepath.Join(storage, fileName)
		mod.Files = append(mod.Files, fileName)
		mod.FilePaths[fileName] = stored
		if info, err := os.Stat(stored); err == nil {
			mod.SizeBytes += info.Size()
		}
	}

	return mod
}

// EnableMod copies the mod's stored payload files into the data directory.
// It fails fast on the first payload file missing from storage (deleted or
// corrupted since install) and returns the files already copied so the
// caller can restore them from backup.
func (m *ModManager) EnableMod(mod *domain.Mod, dataDir string) ([]string, error) {
	var copied []string

	for _, fileName := range mod.Files {
		stored := mod.FilePaths[fileName]
		if _, err := os.Stat(stored); err != nil {
			return copied, &domain.MissingPayloadError{File: fileName, Copied: copied}
		}

		dst := filepath.Join(dataDir, fileName)
		if err := copyFile(stored, dst); err != nil {
			return copied, fmt.Errorf("copying %s: %w", fileName, err)
		}
		copied = append(copied, fileName)
	}

	return copied, nil
}

// RemoveModFiles deletes a mod's storage directory.
func (m *ModManager) RemoveModFiles(name string) error {
	if err := os.RemoveAll(m.StoragePath(name)); err != nil {
		return fmt.Errorf("removing mod storage: %w", err)
	}
	return nil
}

// ValidateModName trims surrounding whitespace and rejects empty names and
// names already present in the registry. Returns the trimmed name.
func ValidateModName(name string, mods []domain.Mod) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrEmptyModName
	}
	if domain.ModByName(mods, name) != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrModExists, name)
	}
	return name, nil
}

// CheckConflicts returns every requested filename owned by some enabled mod,
// mapped to the owning mod's name. Disabled mods sharing filenames are not
// reported; the conflict surfaces when the second mod is enabled.
func CheckConflicts(mods []domain.Mod, fileNames []string) map[string]string {
	conflicts := make(map[string]string)
	for i := range mods {
		if !mods[i].Enabled {
			continue
		}
		for _, fileName := range fileNames {
			if mods[i].HasFile(fileName) {
				conflicts[fileName] = mods[i].Name
			}
		}
	}
	return conflicts
}

// tagVocabulary maps tags to name keywords, checked in a fixed order so
// auto-tagging is deterministic.
var tagVocabulary = []struct {
	tag      string
	keywords []string
}{
	{"Graphics", []string{"graphic", "logo", "kit", "face", "skin", "stadium", "background"}},
	{"Database", []string{"database", "data", "db", "editor", "league", "nation", "player"}},
	{"Gameplay", []string{"gameplay", "balance", "realism", "difficulty", "ai"}},
	{"Faces", []string{"face", "facepack", "facegen", "portrait"}},
	{"Logos", []string{"logo", "badge", "emblem", "crest"}},
	{"Kits", []string{"kit", "uniform", "jersey"}},
	{"Tactics", []string{"tactic", "formation", "strategy"}},
	{"Wonderkids", []string{"wonderkid", "newgen", "regen"}},
	{"Transfers", []string{"transfer", "contract", "wage"}},
	{"UI", []string{"ui", "interface", "skin", "panel"}},
}

// autoTags derives tags from keywords in the mod name, defaulting to "Other".
func autoTags(name string) []string {
	lower := strings.ToLower(name)

	var tags []string
	for _, entry := range tagVocabulary {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}

	if len(tags) == 0 {
		tags = []string{"Other"}
	}
	return tags
}

// copyFile copies src to dst, preserving the source file mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}
