package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Edit mod metadata",
}

var modTagCmd = &cobra.Command{
	Use:   "tag <mod> <tags>",
	Short: "Replace a mod's tags (comma-separated)",
	Args:  cobra.ExactArgs(2),
	RunE:  runModTag,
}

var modOrderCmd = &cobra.Command{
	Use:   "order <mod> <n>",
	Short: "Set a mod's display load order (default 100)",
	Args:  cobra.ExactArgs(2),
	RunE:  runModOrder,
}

func init() {
	modCmd.AddCommand(modTagCmd, modOrderCmd)
	rootCmd.AddCommand(modCmd)
}

func runModTag(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	var tags []string
	for _, tag := range strings.Split(args[1], ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return fmt.Errorf("at least one tag is required")
	}

	if err := svc.SetModTags(args[0], tags); err != nil {
		return err
	}
	fmt.Printf("Tags for %q set to %s.\n", args[0], strings.Join(tags, ", "))
	return nil
}

func runModOrder(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	order, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("load order must be an integer: %q", args[1])
	}

	if err := svc.SetModLoadOrder(args[0], order); err != nil {
		return err
	}
	fmt.Printf("Load order for %q set to %d.\n", args[0], order)
	return nil
}
