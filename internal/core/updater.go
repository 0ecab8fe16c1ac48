package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fmm/internal/domain"
)

// fingerprintFile is the marker stored alongside backups.
const fingerprintFile = ".game_fingerprint"

// keyExtensions are the game data file types sampled for the fingerprint.
// These change when the game is patched.
var keyExtensions = []string{".dbc", ".lnc", ".ltc"}

// UpdateDetector fingerprints key game files to detect that the base game
// changed underneath the stored backups.
type UpdateDetector struct {
	dataPath  string
	backupDir string
	sampleMax int // files sampled per key extension
}

// NewUpdateDetector creates a detector for the given data directory, storing
// its fingerprint marker in backupDir. sampleMax bounds the files hashed per
// key extension; values < 1 fall back to 5.
func NewUpdateDetector(dataPath, backupDir string, sampleMax int) *UpdateDetector {
	if sampleMax < 1 {
		sampleMax = 5
	}
	return &UpdateDetector{dataPath: dataPath, backupDir: backupDir, sampleMax: sampleMax}
}

// Fingerprint hashes a bounded, name-sorted sample of key game files.
// Returns "" when no key files exist (nothing to fingerprint).
func (u *UpdateDetector) Fingerprint() (string, error) {
	entries, err := os.ReadDir(u.dataPath)
	if err != nil {
		return "", fmt.Errorf("reading data dir: %w", err)
	}

	perExt := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		perExt[ext] = append(perExt[ext], entry.Name())
	}

	var sampled []string
	for _, ext := range keyExtensions {
		names := perExt[ext]
		sort.Strings(names)
		if len(names) > u.sampleMax {
			names = names[:u.sampleMax]
		}
		sampled = append(sampled, names...)
	}

	if len(sampled) == 0 {
		return "", nil
	}
	sort.Strings(sampled)

	// name:size:mtime tuples joined by | so the hash is deterministic for
	// an unchanged installation.
	parts := make([]string, 0, len(sampled))
	for _, name := range sampled {
		info, err := os.Stat(filepath.Join(u.dataPath, name))
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", name, info.Size(), info.ModTime().UnixNano()))
	}
	if len(parts) == 0 {
		return "", nil
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:]), nil
}

// DetectUpdate compares the current fingerprint to the stored one. The first
// run stores a baseline and reports no update; a mismatch reports an update
// with the timestamp of the last known-good state.
func (u *UpdateDetector) DetectUpdate() (bool, string, error) {
	current, err := u.Fingerprint()
	if err != nil {
		return false, "", err
	}
	if current == "" {
		return false, "unable to calculate game fingerprint", nil
	}

	stored, err := u.StoredFingerprint()
	if err != nil {
		return false, "", err
	}
	if stored == nil {
		if err := u.StoreFingerprint(current); err != nil {
			return false, "", err
		}
		return false, "game fingerprint initialized", nil
	}

	if stored.Fingerprint != current {
		return true, fmt.Sprintf("game update detected (last known state: %s)", stored.Timestamp), nil
	}

	return false, "no update detected", nil
}

// StoreFingerprint persists the fingerprint record in the backup directory.
func (u *UpdateDetector) StoreFingerprint(fingerprint string) error {
	record := domain.GameFingerprint{
		Fingerprint: fingerprint,
		Timestamp:   time.Now().Format(time.RFC3339),
		DataPath:    u.dataPath,
	}

	data, err := json.MarshalIndent(&record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling fingerprint: %w", err)
	}

	if err := os.WriteFile(u.markerPath(), data, 0644); err != nil {
		return fmt.Errorf("writing fingerprint: %w", err)
	}
	return nil
}

// StoredFingerprint reads the stored fingerprint record, or nil if absent
// or unreadable.
func (u *UpdateDetector) StoredFingerprint() (*domain.GameFingerprint, error) {
	data, err := os.ReadFile(u.markerPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading fingerprint: %w", err)
	}

	var record domain.GameFingerprint
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, nil // treat a corrupt marker as absent
	}
	return &record, nil
}

// ClearFingerprint removes the stored fingerprint record.
func (u *UpdateDetector) ClearFingerprint() error {
	if err := os.Remove(u.markerPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing fingerprint: %w", err)
	}
	return nil
}

func (u *UpdateDetector) markerPath() string {
	return filepath.Join(u.backupDir, fingerprintFile)
}
