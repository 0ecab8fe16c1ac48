package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fmm/internal/core"
	"fmm/internal/logging"
	"fmm/internal/storage/config"
)

var (
	version = "1.0.0"

	// Global flags
	configDir  string
	dataDir    string
	jsonOutput bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fmm",
	Short: "Football Manager mod manager",
	Long: `fmm manages Football Manager 26 mods by swapping .bundle game data
files, backing up the originals so they can always be restored byte-exact.
Mods are organized into profiles, and update detection catches the base game
changing underneath the backups.

Use subcommands for operations. Run 'fmm --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/fmm)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/fmm)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, status, history)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// resolveDirs returns the config and data directories, honoring flags and
// falling back to XDG-style defaults.
func resolveDirs() (string, string, error) {
	cfg, data := configDir, dataDir
	if cfg == "" || data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("finding home directory: %w", err)
		}
		if cfg == "" {
			cfg = filepath.Join(home, ".config", "fmm")
		}
		if data == "" {
			data = filepath.Join(home, ".local", "share", "fmm")
		}
	}
	return cfg, data, nil
}

// initService creates and initializes the core service.
func initService() (*core.Service, error) {
	cfg, data, err := resolveDirs()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(data, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	logger, err := newLogger(cfg, data)
	if err != nil {
		return nil, err
	}

	svc, err := core.NewService(core.ServiceConfig{
		ConfigDir: cfg,
		DataDir:   data,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing service: %w", err)
	}

	return svc, nil
}

// newLogger builds the file logger from settings, defaulting to fmm.log in
// the data directory.
func newLogger(cfgDir, dataDir string) (*zap.SugaredLogger, error) {
	settings, err := config.LoadSettings(cfgDir)
	if err != nil {
		return nil, err
	}

	logPath := settings.LogFile
	if logPath == "" {
		logPath = filepath.Join(dataDir, "fmm.log")
	}

	logger, err := logging.New(logPath)
	if err != nil {
		// Logging must not block mod management.
		return logging.Nop(), nil
	}
	return logger, nil
}

// requireInstallPath fails early with guidance when no game path is set.
func requireInstallPath(svc *core.Service) error {
	if !svc.Ready() {
		return fmt.Errorf("game installation path is not set; run 'fmm path detect' or 'fmm path set <folder>'")
	}
	return nil
}
