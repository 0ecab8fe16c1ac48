package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"fmm/internal/domain"
	"fmm/internal/paths"
	"fmm/internal/storage/backup"
	"fmm/internal/storage/config"
	"fmm/internal/storage/history"
)

// ServiceConfig holds configuration for the core service.
type ServiceConfig struct {
	ConfigDir string // config.json and settings.yaml
	DataDir   string // backups, mod storage, history journal
	Logger    *zap.SugaredLogger
}

// Service is the orchestrator for mod management operations. It owns the
// in-memory profile/mod state and drives the backup/copy/persist sequence
// around every mutation. Calls are synchronous and must be serialized by
// the caller; the service holds no internal locks.
type Service struct {
	pathMgr   *paths.Manager
	cfg       *config.Manager
	settings  *config.Settings
	profiles  *ProfileManager
	mods      *ModManager
	extractor *Extractor
	backups   *backup.Store   // nil until an install path is set
	detector  *UpdateDetector // nil until an install path is set
	journal   *history.DB
	log       *zap.SugaredLogger

	dataDir  string
	rootPath string
	dataPath string
	tempDir  string
}

// NewService loads persisted state and wires the core components.
func NewService(cfg ServiceConfig) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	settings, err := config.LoadSettings(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	configMgr := config.New(filepath.Join(cfg.ConfigDir, "config.json"))
	state := configMgr.Load()

	modMgr, err := NewModManager(filepath.Join(cfg.DataDir, "mods"))
	if err != nil {
		return nil, err
	}

	journal, err := history.New(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("opening history journal: %w", err)
	}

	s := &Service{
		pathMgr:   paths.New(),
		cfg:       configMgr,
		settings:  settings,
		profiles:  NewProfileManager(state.Profiles, state.CurrentProfile),
		mods:      modMgr,
		extractor: NewExtractor(),
		journal:   journal,
		log:       logger,
		dataDir:   cfg.DataDir,
		tempDir:   filepath.Join(cfg.DataDir, "temp_extract"),
	}

	if state.RootPath != "" {
		if err := s.attachInstallation(state.RootPath); err != nil {
			// A stale path (game moved or uninstalled) must not block
			// startup; the user re-selects via SetInstallPath.
			s.log.Warnw("stored install path invalid", "path", state.RootPath, "error", err)
		}
	}

	return s, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	_ = s.log.Sync()
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// attachInstallation validates root and wires the path-dependent components.
func (s *Service) attachInstallation(root string) error {
	dataPath := s.pathMgr.DataPath(root)
	if dataPath == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInstall, root)
	}

	backups, err := backup.New(filepath.Join(s.dataDir, "backups"), dataPath)
	if err != nil {
		return err
	}

	s.rootPath = root
	s.dataPath = dataPath
	s.backups = backups
	s.detector = NewUpdateDetector(dataPath, backups.Root(), s.settings.FingerprintSampleMax)
	return nil
}

// Ready reports whether an install path is set and validated.
func (s *Service) Ready() bool {
	return s.backups != nil
}

// InstallPath returns the configured game installation root.
func (s *Service) InstallPath() string {
	return s.rootPath
}

// DataPath returns the resolved game data directory.
func (s *Service) DataPath() string {
	return s.dataPath
}

// Backups exposes the backup store for introspection commands.
func (s *Service) Backups() *backup.Store {
	return s.backups
}

// Journal exposes the history journal.
func (s *Service) Journal() *history.DB {
	return s.journal
}

// DetectInstallation probes common Steam locations for the game.
func (s *Service) DetectInstallation() string {
	return s.pathMgr.DetectInstallation()
}

// SetInstallPath validates and persists a user-selected installation root,
// correcting a parent-folder selection.
func (s *Service) SetInstallPath(selected string) error {
	root, err := s.pathMgr.ValidateSelection(selected)
	if err != nil {
		return err
	}
	if err := s.attachInstallation(root); err != nil {
		return err
	}
	s.log.Infow("install path set", "root", root, "data", s.dataPath)
	return s.persist()
}

// AddMod extracts an archive, installs its payload into permanent storage,
// and registers the mod (disabled) in the current profile. The returned map
// lists payload files that conflict with enabled mods; the mod is still
// added and the conflicts block enabling it later.
func (s *Service) AddMod(archivePath, name string) (*domain.Mod, map[string]string, error) {
	name, err := ValidateModName(name, s.profiles.CurrentMods())
	if err != nil {
		return nil, nil, err
	}

	payloadFiles, err := s.extractor.Extract(archivePath, s.tempDir)
	if err != nil {
		return nil, nil, err
	}

	if err := s.mods.InstallMod(name, payloadFiles); err != nil {
		return nil, nil, err
	}

	entry := s.mods.NewModEntry(name, payloadFiles)
	conflicts := CheckConflicts(s.profiles.CurrentMods(), entry.Files)

	s.profiles.SetCurrentMods(append(s.profiles.CurrentMods(), entry))
	if err := s.persist(); err != nil {
		return nil, nil, err
	}

	s.record(history.ActionInstall, name, fmt.Sprintf("%d file(s), %d bytes", len(entry.Files), entry.SizeBytes))
	s.log.Infow("mod installed", "mod", name, "files", len(entry.Files))

	added := domain.ModByName(s.profiles.CurrentMods(), name)
	return added, conflicts, nil
}

// EnableMod backs up the affected originals and copies the mod's payload
// into the data directory. Pre-flight checks (conflicts, state) run before
// any file mutation; a mid-copy failure is rolled back from backup.
func (s *Service) EnableMod(name string) error {
	if !s.Ready() {
		return domain.ErrNoInstallPath
	}

	mod := domain.ModByName(s.profiles.CurrentMods(), name)
	if mod == nil {
		return fmt.Errorf("%w: %s", domain.ErrModNotFound, name)
	}
	if mod.Enabled {
		return domain.ErrModEnabled
	}

	if conflicts := CheckConflicts(s.profiles.CurrentMods(), mod.Files); len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}

	tx, err := BeginEnable(s.mods, s.backups, mod, s.dataPath)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Errorw("rollback failed", "mod", name, "error", rbErr)
		}
		return fmt.Errorf("enabling %s: %w", name, err)
	}
	tx.Commit()

	if err := s.persist(); err != nil {
		return err
	}

	s.record(history.ActionEnable, name, strings.Join(mod.Files, ", "))
	s.log.Infow("mod enabled", "mod", name)
	return nil
}

// DisableMod restores the mod's files from backup and marks it disabled.
// If any file cannot be restored the mod stays enabled and the error lists
// what went wrong.
func (s *Service) DisableMod(name string) error {
	if !s.Ready() {
		return domain.ErrNoInstallPath
	}

	mod := domain.ModByName(s.profiles.CurrentMods(), name)
	if mod == nil {
		return fmt.Errorf("%w: %s", domain.ErrModNotFound, name)
	}
	if !mod.Enabled {
		return domain.ErrModDisabled
	}

	if result := s.backups.RestoreFiles(mod.Files); !result.OK() {
		return fmt.Errorf("disabling %s: %w", name, result.Err())
	}

	mod.Enabled = false
	if err := s.persist(); err != nil {
		return err
	}

	s.record(history.ActionDisable, name, "")
	s.log.Infow("mod disabled", "mod", name)
	return nil
}

// RemoveMod deletes a mod's stored payload and registry entry. An enabled
// mod has its files restored first (best effort).
func (s *Service) RemoveMod(name string) error {
	mods := s.profiles.CurrentMods()
	mod := domain.ModByName(mods, name)
	if mod == nil {
		return fmt.Errorf("%w: %s", domain.ErrModNotFound, name)
	}

	if mod.Enabled && s.backups != nil {
		if result := s.backups.RestoreFiles(mod.Files); !result.OK() {
			s.log.Warnw("restore during removal incomplete", "mod", name, "error", result.Err())
		}
	}

	if err := s.mods.RemoveModFiles(name); err != nil {
		return err
	}

	kept := make([]domain.Mod, 0, len(mods)-1)
	for _, m := range mods {
		if m.Name != name {
			kept = append(kept, m)
		}
	}
	s.profiles.SetCurrentMods(kept)

	if err := s.persist(); err != nil {
		return err
	}

	s.record(history.ActionRemove, name, "")
	s.log.Infow("mod removed", "mod", name)
	return nil
}

// RestoreAll copies every backed-up original back into the data directory
// and disables all mods in the current profile.
func (s *Service) RestoreAll() (domain.BatchResult, error) {
	if !s.Ready() {
		return domain.BatchResult{}, domain.ErrNoInstallPath
	}

	result := s.backups.RestoreAll()

	mods := s.profiles.CurrentMods()
	for i := range mods {
		mods[i].Enabled = false
	}
	s.profiles.SetCurrentMods(mods)

	if err := s.persist(); err != nil {
		return result, err
	}

	s.record(history.ActionRestoreAll, "", fmt.Sprintf("%d file(s) restored", result.Count()))
	s.log.Infow("originals restored", "count", result.Count(), "failed", len(result.Failed))
	return result, nil
}

// Mods returns the current profile's mod list.
func (s *Service) Mods() []domain.Mod {
	return s.profiles.CurrentMods()
}

// Mod returns the named mod from the current profile, or an error.
func (s *Service) Mod(name string) (*domain.Mod, error) {
	mod := domain.ModByName(s.profiles.CurrentMods(), name)
	if mod == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, name)
	}
	return mod, nil
}

// SetModTags replaces a mod's tags.
func (s *Service) SetModTags(name string, tags []string) error {
	mod, err := s.Mod(name)
	if err != nil {
		return err
	}
	mod.Tags = tags
	return s.persist()
}

// SetModLoadOrder sets a mod's display load order.
func (s *Service) SetModLoadOrder(name string, order int) error {
	mod, err := s.Mod(name)
	if err != nil {
		return err
	}
	mod.LoadOrder = order
	return s.persist()
}

// CheckConflicts reports which of the named mod's files are owned by other
// enabled mods in the current profile.
func (s *Service) CheckConflicts(name string) (map[string]string, error) {
	mod, err := s.Mod(name)
	if err != nil {
		return nil, err
	}
	if mod.Enabled {
		// An enabled mod owns its own files; only other owners matter.
		return nil, nil
	}
	return CheckConflicts(s.profiles.CurrentMods(), mod.Files), nil
}

// persist saves the full state through the config manager.
func (s *Service) persist() error {
	return s.cfg.Save(&config.State{
		RootPath:       s.rootPath,
		Profiles:       s.profiles.Profiles(),
		CurrentProfile: s.profiles.Current(),
	})
}

// record appends to the history journal, logging rather than failing the
// operation when the journal write errors.
func (s *Service) record(action, modName, detail string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(action, modName, s.profiles.Current(), detail); err != nil {
		s.log.Warnw("history write failed", "action", action, "error", err)
	}
}
