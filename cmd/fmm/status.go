package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fmm/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installation, backup, and profile status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	enabled := len(domain.EnabledMods(svc.Mods()))
	backupCount := 0
	if svc.Ready() {
		backupCount = svc.Backups().Count()
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"install_path":    svc.InstallPath(),
			"data_path":       svc.DataPath(),
			"current_profile": svc.CurrentProfile(),
			"profiles":        svc.ProfileNames(),
			"mods":            len(svc.Mods()),
			"enabled_mods":    enabled,
			"backup_count":    backupCount,
		})
	}

	fmt.Println(render(styleHeader, "fmm status"))
	if svc.Ready() {
		fmt.Printf("Installation: %s\n", svc.InstallPath())
	} else {
		fmt.Println(render(styleWarning, "Installation: not set"))
	}
	fmt.Printf("Profile:      %s (of %d)\n", svc.CurrentProfile(), len(svc.ProfileNames()))
	fmt.Printf("Mods:         %d installed, %d enabled\n", len(svc.Mods()), enabled)
	fmt.Printf("Backups:      %d original file(s)\n", backupCount)

	if svc.Ready() {
		if fp, err := svc.StoredFingerprint(); err == nil && fp != nil {
			fmt.Printf("Fingerprint:  %.12s (stored %s)\n", fp.Fingerprint, fp.Timestamp)
		}
	}
	return nil
}
