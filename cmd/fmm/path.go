package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Manage the game installation path",
}

var pathShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured installation and data paths",
	RunE:  runPathShow,
}

var pathDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Auto-detect the game installation in common Steam locations",
	RunE:  runPathDetect,
}

var pathSetCmd = &cobra.Command{
	Use:   "set <folder>",
	Short: "Set the game installation folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathSet,
}

func init() {
	pathCmd.AddCommand(pathShowCmd, pathDetectCmd, pathSetCmd)
	rootCmd.AddCommand(pathCmd)
}

func runPathShow(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if !svc.Ready() {
		fmt.Println("No installation path set. Run 'fmm path detect' or 'fmm path set <folder>'.")
		return nil
	}

	fmt.Printf("Installation: %s\n", svc.InstallPath())
	fmt.Printf("Data:         %s\n", svc.DataPath())
	return nil
}

func runPathDetect(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	root := svc.DetectInstallation()
	if root == "" {
		return fmt.Errorf("no installation found in common Steam locations; use 'fmm path set <folder>'")
	}

	if err := svc.SetInstallPath(root); err != nil {
		return err
	}

	fmt.Printf("Installation found: %s\n", root)
	return nil
}

func runPathSet(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SetInstallPath(args[0]); err != nil {
		return err
	}

	fmt.Printf("Installation path set: %s\n", svc.InstallPath())
	return nil
}
