package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fmm/internal/core"
	"fmm/internal/domain"
)

var addName string

var addCmd = &cobra.Command{
	Use:   "add <archive>",
	Short: "Add a mod from a zip or rar archive",
	Long: `Extract a mod archive, copy its .bundle files into permanent storage,
and register the mod (disabled) in the current profile.

Examples:
  fmm add ~/Downloads/MegaFacepack.zip
  fmm add kits.rar --name "Premier League Kits"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "mod name (default: archive filename)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	archivePath := args[0]
	name := addName
	if name == "" {
		base := filepath.Base(archivePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	mod, conflicts, err := svc.AddMod(archivePath, name)
	if err != nil {
		var extractErr *core.ExtractError
		if errors.As(err, &extractErr) && extractErr.Detail != "" {
			return fmt.Errorf("%s\n%s", extractErr.Msg, extractErr.Detail)
		}
		if errors.Is(err, domain.ErrNoPayload) {
			return fmt.Errorf("%w; ensure the archive contains FM26 mod files", err)
		}
		return err
	}

	fmt.Printf("Added %q (%d file(s), %s)\n", mod.Name, len(mod.Files), humanSize(mod.SizeBytes))
	fmt.Printf("Tags: %s\n", strings.Join(mod.Tags, ", "))

	if len(conflicts) > 0 {
		fmt.Println(render(styleWarning, "Conflicts with enabled mods:"))
		for _, file := range sortedKeys(conflicts) {
			fmt.Printf("  %s (owned by %s)\n", file, conflicts[file])
		}
		fmt.Println("Disable the conflicting mods before enabling this one.")
	}

	return nil
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
