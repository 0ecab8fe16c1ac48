package core

import (
	"fmt"

	"fmm/internal/domain"
	"fmm/internal/storage/backup"
)

// EnableTx is the two-phase enable: BeginEnable backs up the affected
// originals and copies the mod's payload files into the data directory;
// the caller then either Commit (mark the mod enabled) or Rollback (restore
// the copied files from backup). Encoding rollback in the transaction keeps
// the obligation out of caller discipline.
type EnableTx struct {
	mod     *domain.Mod
	backups *backup.Store
	copied  []string
	done    bool
}

// BeginEnable backs up the mod's target files and copies its payload into
// dataDir. On copy failure the returned transaction is still valid and must
// be rolled back; Copied() reports how far the copy got.
func BeginEnable(mods *ModManager, backups *backup.Store, mod *domain.Mod, dataDir string) (*EnableTx, error) {
	tx := &EnableTx{mod: mod, backups: backups}

	if result := backups.BackupFiles(mod.Files); !result.OK() {
		tx.done = true
		return tx, fmt.Errorf("backing up %s: %v", result.Failed[0].Name, result.Failed[0].Err)
	}

	copied, err := mods.EnableMod(mod, dataDir)
	tx.copied = copied
	if err != nil {
		return tx, err
	}

	return tx, nil
}

// Copied returns the payload files deployed so far.
func (tx *EnableTx) Copied() []string {
	return tx.copied
}

// Commit marks the mod enabled. No further file work happens here; the copy
// already ran in BeginEnable.
func (tx *EnableTx) Commit() {
	if tx.done {
		return
	}
	tx.mod.Enabled = true
	tx.done = true
}

// Rollback restores every file copied so far from backup, undoing a partial
// enable. Safe to call after a failed BeginEnable.
func (tx *EnableTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true

	if len(tx.copied) == 0 {
		return nil
	}
	if result := tx.backups.RestoreFiles(tx.copied); !result.OK() {
		return result.Err()
	}
	return nil
}
