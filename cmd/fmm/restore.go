package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore all backed-up original files and disable every mod",
	Long: `Copy every backed-up original file back into the game data directory
and disable all mods in the current profile. Originals are only backed up
when a mod first modifies them, so a fresh setup has nothing to restore.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireInstallPath(svc); err != nil {
		return err
	}

	if !svc.Backups().HasBackups() {
		fmt.Println("No backed-up files found; nothing to restore.")
		return nil
	}

	count := svc.Backups().Count()
	if !restoreYes && !confirm(fmt.Sprintf("Restore %d backed-up file(s) and disable all mods?", count)) {
		fmt.Println("Cancelled.")
		return nil
	}

	result, err := svc.RestoreAll()
	if err != nil {
		return err
	}

	if !result.OK() {
		fmt.Println(render(styleWarning, fmt.Sprintf("Restored %d of %d files. Failed:", result.Count(), count)))
		for _, f := range result.Failed {
			fmt.Printf("  %s: %v\n", f.Name, f.Err)
		}
		return nil
	}

	fmt.Printf("Restored %d original file(s). All mods disabled.\n", result.Count())
	return nil
}
