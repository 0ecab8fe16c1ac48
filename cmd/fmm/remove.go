package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:   "remove <mod>",
	Short: "Remove a mod and delete its stored files",
	Long: `Remove a mod from the current profile and delete its stored payload
files. An enabled mod has its original files restored first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	name := args[0]
	if _, err := svc.Mod(name); err != nil {
		return err
	}

	if !removeYes && !confirm(fmt.Sprintf("Permanently remove %q and its stored files?", name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := svc.RemoveMod(name); err != nil {
		return err
	}

	fmt.Printf("Mod %q removed.\n", name)
	return nil
}

// confirm prompts for a y/N answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
