// Package backup implements the selective original-file store. Originals
// are backed up before a mod first overwrites them and restored byte-exact
// on disable. The store is a single flat directory holding at most one
// copy per payload filename.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"fmm/internal/domain"
)

// Store manages selective backup and restore of original game files.
type Store struct {
	root     string // backup root; also hosts the fingerprint marker
	dir      string // flat directory of original file copies
	dataPath string // game data directory the originals come from
}

// New creates a backup store rooted at backupRoot for the given data
// directory. The original-file directory is created if absent.
func New(backupRoot, dataPath string) (*Store, error) {
	dir := filepath.Join(backupRoot, "original")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}
	return &Store{root: backupRoot, dir: dir, dataPath: dataPath}, nil
}

// Root returns the backup root directory.
func (s *Store) Root() string {
	return s.root
}

// BackupFiles copies the named live files into the store. First write wins:
// a file that already has a backup is skipped, so the store always holds the
// true pre-modification original. Files absent from the data directory are
// also skipped (the mod may be introducing them). Failures are collected
// per file; the batch continues.
func (s *Store) BackupFiles(names []string) domain.BatchResult {
	var result domain.BatchResult

	for _, name := range names {
		src := filepath.Join(s.dataPath, name)
		dst := filepath.Join(s.dir, name)

		if _, err := os.Stat(dst); err == nil {
			continue // already backed up
		}
		if _, err := os.Stat(src); err != nil {
			continue // no live file to preserve
		}

		if err := copyFile(src, dst); err != nil {
			result.Failed = append(result.Failed, domain.FileError{Name: name, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, name)
	}

	return result
}

// RestoreFiles copies stored originals back to the data directory.
func (s *Store) RestoreFiles(names []string) domain.RestoreResult {
	var result domain.RestoreResult

	for _, name := range names {
		src := filepath.Join(s.dir, name)
		if _, err := os.Stat(src); err != nil {
			result.Missing = append(result.Missing, name)
			continue
		}

		dst := filepath.Join(s.dataPath, name)
		if err := copyFile(src, dst); err != nil {
			result.Failed = append(result.Failed, domain.FileError{Name: name, Err: err})
			continue
		}
		result.Restored = append(result.Restored, name)
	}

	return result
}

// RestoreAll copies every stored original back to the data directory,
// regardless of which mod overwrote it.
func (s *Store) RestoreAll() domain.BatchResult {
	var result domain.BatchResult

	for _, name := range s.list() {
		dst := filepath.Join(s.dataPath, name)
		if err := copyFile(filepath.Join(s.dir, name), dst); err != nil {
			result.Failed = append(result.Failed, domain.FileError{Name: name, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, name)
	}

	return result
}

// Has reports whether a backup exists for the given filename.
func (s *Store) Has(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Count returns the number of stored original files.
func (s *Store) Count() int {
	return len(s.list())
}

// HasBackups reports whether the store holds any originals.
func (s *Store) HasBackups() bool {
	return s.Count() > 0
}

// Clear deletes every stored original. Used only by update recovery, when
// the backed-up base game no longer matches the installation.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clearing backup dir: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("recreating backup dir: %w", err)
	}
	return nil
}

// list returns the stored filenames sorted for deterministic iteration.
func (s *Store) list() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
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
