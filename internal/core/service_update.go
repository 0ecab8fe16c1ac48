package core

import (
	"fmt"

	"fmm/internal/domain"
	"fmm/internal/storage/history"
)

// CheckForUpdate compares the game's current fingerprint against the last
// stored one. The first check stores a baseline and reports no update.
func (s *Service) CheckForUpdate() (bool, string, error) {
	if !s.Ready() {
		return false, "", domain.ErrNoInstallPath
	}
	return s.detector.DetectUpdate()
}

// StoredFingerprint returns the last recorded fingerprint, or nil.
func (s *Service) StoredFingerprint() (*domain.GameFingerprint, error) {
	if !s.Ready() {
		return nil, domain.ErrNoInstallPath
	}
	return s.detector.StoredFingerprint()
}

// RunUpdateRecovery resets mod state after a detected game update. The
// backup store is cleared wholesale (it reflects the pre-update base game;
// restoring it would corrupt the updated installation), every mod in every
// profile is forced disabled, and a fresh fingerprint is stored. This is
// the only path that clears backups in bulk.
func (s *Service) RunUpdateRecovery() error {
	if !s.Ready() {
		return domain.ErrNoInstallPath
	}

	if err := s.backups.Clear(); err != nil {
		return err
	}

	profiles := s.profiles.Profiles()
	for i := range profiles {
		for j := range profiles[i].Mods {
			profiles[i].Mods[j].Enabled = false
		}
	}

	if err := s.detector.ClearFingerprint(); err != nil {
		return err
	}
	fingerprint, err := s.detector.Fingerprint()
	if err != nil {
		return err
	}
	if fingerprint != "" {
		if err := s.detector.StoreFingerprint(fingerprint); err != nil {
			return err
		}
	}

	if err := s.persist(); err != nil {
		return err
	}

	s.record(history.ActionUpdateRecovery, "", fmt.Sprintf("fingerprint %.12s", fingerprint))
	s.log.Infow("update recovery completed", "fingerprint", fingerprint)
	return nil
}
