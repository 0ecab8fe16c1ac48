package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrModNotFound          = errors.New("mod not found")
	ErrModExists            = errors.New("mod already exists")
	ErrEmptyModName         = errors.New("mod name cannot be empty")
	ErrModEnabled           = errors.New("mod is already enabled")
	ErrModDisabled          = errors.New("mod is not enabled")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileExists        = errors.New("profile already exists")
	ErrDeleteCurrentProfile = errors.New("cannot delete the current profile")
	ErrNoPayload            = errors.New("no .bundle files found in archive")
	ErrUnpackToolMissing    = errors.New("rar extraction tool not found")
	ErrUnsupportedArchive   = errors.New("only zip and rar archives are supported")
	ErrInvalidInstall       = errors.New("not a valid game installation")
	ErrNoInstallPath        = errors.New("game installation path is not set")
)

// ConflictError reports payload files already owned by enabled mods.
// Conflicts maps filename to the owning mod's name.
type ConflictError struct {
	Conflicts map[string]string
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for file, mod := range e.Conflicts {
		names = append(names, fmt.Sprintf("%s (owned by %s)", file, mod))
	}
	sort.Strings(names)
	return "file conflicts with enabled mods: " + strings.Join(names, ", ")
}

// MissingPayloadError signals that a stored payload file disappeared since
// install. Enable is fail-fast: Copied lists files deployed before the
// failure so the caller can roll them back.
type MissingPayloadError struct {
	File   string
	Copied []string
}

func (e *MissingPayloadError) Error() string {
	return "mod file missing from storage: " + e.File
}

// RestoreError reports a restore batch that could not fully complete.
type RestoreError struct {
	Missing []string
	Failed  []FileError
}

func (e *RestoreError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "no backup for: "+strings.Join(e.Missing, ", "))
	}
	for _, f := range e.Failed {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return "restore incomplete: " + strings.Join(parts, "; ")
}
