package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Profiles are independent mod sets with their own enabled states.
Switching profiles restores the outgoing profile's files and deploys the
incoming profile's enabled mods.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new empty profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCreate,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile (the current profile is protected)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileRename,
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to another profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSwitch,
}

func init() {
	profileCmd.AddCommand(profileListCmd, profileCreateCmd, profileDeleteCmd, profileRenameCmd, profileSwitchCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	current := svc.CurrentProfile()
	for _, p := range svc.Profiles() {
		marker := " "
		if p.Name == current {
			marker = "*"
		}
		fmt.Printf("%s %s (%d mod(s))\n", marker, p.Name, len(p.Mods))
	}
	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.CreateProfile(args[0]); err != nil {
		return err
	}
	fmt.Printf("Profile %q created.\n", args[0])
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.DeleteProfile(args[0]); err != nil {
		return err
	}
	fmt.Printf("Profile %q deleted.\n", args[0])
	return nil
}

func runProfileRename(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.RenameProfile(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Profile %q renamed to %q.\n", args[0], args[1])
	return nil
}

func runProfileSwitch(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SwitchProfile(args[0]); err != nil {
		return err
	}
	fmt.Printf("Switched to profile %q.\n", args[0])
	return nil
}
