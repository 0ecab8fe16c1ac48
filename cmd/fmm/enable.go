package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fmm/internal/domain"
)

var enableCmd = &cobra.Command{
	Use:   "enable <mod>",
	Short: "Enable a mod (backs up originals, copies mod files into the game)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnable,
}

var disableCmd = &cobra.Command{
	Use:   "disable <mod>",
	Short: "Disable a mod (restores the original files from backup)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisable,
}

func init() {
	rootCmd.AddCommand(enableCmd, disableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireInstallPath(svc); err != nil {
		return err
	}

	name := args[0]
	if err := svc.EnableMod(name); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			fmt.Println(render(styleError, "Cannot enable due to file conflicts:"))
			for _, file := range sortedKeys(conflict.Conflicts) {
				fmt.Printf("  %s (owned by %s)\n", file, conflict.Conflicts[file])
			}
			return fmt.Errorf("disable the conflicting mods first")
		}
		if errors.Is(err, domain.ErrModEnabled) {
			fmt.Printf("Mod %q is already enabled.\n", name)
			return nil
		}
		return err
	}

	fmt.Printf("Mod %q %s.\n", name, render(styleEnabled, "enabled"))
	return nil
}

func runDisable(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireInstallPath(svc); err != nil {
		return err
	}

	name := args[0]
	if err := svc.DisableMod(name); err != nil {
		if errors.Is(err, domain.ErrModDisabled) {
			fmt.Printf("Mod %q is not enabled.\n", name)
			return nil
		}
		return err
	}

	fmt.Printf("Mod %q %s.\n", name, render(styleDisabled, "disabled"))
	return nil
}
