package core

import (
	"fmt"

	"fmm/internal/domain"
	"fmm/internal/storage/history"
)

// CurrentProfile returns the name of the active profile.
func (s *Service) CurrentProfile() string {
	return s.profiles.Current()
}

// ProfileNames lists all profiles in order.
func (s *Service) ProfileNames() []string {
	return s.profiles.Names()
}

// Profiles returns all profiles.
func (s *Service) Profiles() []domain.Profile {
	return s.profiles.Profiles()
}

// CreateProfile adds a new empty profile.
func (s *Service) CreateProfile(name string) error {
	if err := s.profiles.Create(name); err != nil {
		return err
	}
	return s.persist()
}

// DeleteProfile removes a profile; the current profile is protected. Stored
// payloads of the profile's mods are deleted when no other profile
// references them.
func (s *Service) DeleteProfile(name string) error {
	profile := s.profiles.Profile(name)
	if profile == nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	doomed := profile.Mods

	if err := s.profiles.Delete(name); err != nil {
		return err
	}

	for _, mod := range doomed {
		if !s.modReferenced(mod.Name) {
			if err := s.mods.RemoveModFiles(mod.Name); err != nil {
				s.log.Warnw("removing orphaned mod storage failed", "mod", mod.Name, "error", err)
			}
		}
	}

	return s.persist()
}

// RenameProfile renames a profile, keeping the current pointer in step.
func (s *Service) RenameProfile(oldName, newName string) error {
	if err := s.profiles.Rename(oldName, newName); err != nil {
		return err
	}
	return s.persist()
}

// SwitchProfile activates another profile. Before the swap every enabled
// mod of the outgoing profile has its files restored from backup; after the
// swap the incoming profile's enabled mods are re-backed-up and re-copied.
// This ordering keeps the enabled flags and the on-disk state in agreement
// across the switch. A mod whose payload can no longer be deployed is
// flagged disabled rather than aborting the switch.
func (s *Service) SwitchProfile(name string) error {
	if s.profiles.Profile(name) == nil {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	previous := s.profiles.Current()
	if name == previous {
		return nil
	}

	if !s.Ready() && s.anyEnabled() {
		return domain.ErrNoInstallPath
	}

	// Restore originals for the outgoing profile's enabled mods.
	for _, mod := range domain.EnabledMods(s.profiles.CurrentMods()) {
		if result := s.backups.RestoreFiles(mod.Files); !result.OK() {
			s.log.Warnw("restore during switch incomplete", "mod", mod.Name, "error", result.Err())
		}
	}

	if err := s.profiles.Switch(name); err != nil {
		return err
	}

	// Re-deploy the incoming profile's enabled mods.
	incoming := s.profiles.CurrentMods()
	for i := range incoming {
		if !incoming[i].Enabled {
			continue
		}
		tx, err := BeginEnable(s.mods, s.backups, &incoming[i], s.dataPath)
		if err != nil {
			s.log.Warnw("re-deploy during switch failed", "mod", incoming[i].Name, "error", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Errorw("rollback failed", "mod", incoming[i].Name, "error", rbErr)
			}
			incoming[i].Enabled = false
			continue
		}
		tx.Commit()
	}
	s.profiles.SetCurrentMods(incoming)

	if err := s.persist(); err != nil {
		return err
	}

	s.record(history.ActionProfileSwitch, "", fmt.Sprintf("%s -> %s", previous, name))
	s.log.Infow("profile switched", "from", previous, "to", name)
	return nil
}

// anyEnabled reports whether any profile has an enabled mod.
func (s *Service) anyEnabled() bool {
	for _, p := range s.profiles.Profiles() {
		if len(domain.EnabledMods(p.Mods)) > 0 {
			return true
		}
	}
	return false
}

// modReferenced reports whether any remaining profile references the mod.
func (s *Service) modReferenced(name string) bool {
	for _, p := range s.profiles.Profiles() {
		if domain.ModByName(p.Mods, name) != nil {
			return true
		}
	}
	return false
}
