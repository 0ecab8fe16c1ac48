package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var updateRecoverYes bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Detect game updates and recover from them",
}

var updateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the base game changed since backups were taken",
	RunE:  runUpdateCheck,
}

var updateRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Reset mod state after a game update",
	Long: `After a game update the stored backups reflect the old base game;
restoring them would corrupt the updated installation. Recovery clears the
backup store, disables every mod in every profile, and stores a fresh
fingerprint.`,
	RunE: runUpdateRecover,
}

func init() {
	updateRecoverCmd.Flags().BoolVarP(&updateRecoverYes, "yes", "y", false, "skip confirmation")
	updateCmd.AddCommand(updateCheckCmd, updateRecoverCmd)
	rootCmd.AddCommand(updateCmd)
}

func runUpdateCheck(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireInstallPath(svc); err != nil {
		return err
	}

	detected, message, err := svc.CheckForUpdate()
	if err != nil {
		return err
	}

	if detected {
		fmt.Println(render(styleWarning, "Game update detected."))
		fmt.Println(message)
		fmt.Println("Run 'fmm update recover' to reset backups and mod state.")
		return nil
	}

	fmt.Println(message)
	return nil
}

func runUpdateRecover(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireInstallPath(svc); err != nil {
		return err
	}

	if !updateRecoverYes && !confirm("Clear all backups, disable every mod, and re-fingerprint the game?") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := svc.RunUpdateRecovery(); err != nil {
		return err
	}

	fmt.Println("Recovery complete: backups cleared, all mods disabled, fingerprint refreshed.")
	return nil
}
