package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fmm/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods in the current profile",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	mods := append([]domain.Mod(nil), svc.Mods()...)
	// Load order sorts the display only; ties break on name.
	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].LoadOrder != mods[j].LoadOrder {
			return mods[i].LoadOrder < mods[j].LoadOrder
		}
		return mods[i].Name < mods[j].Name
	})

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(listPayload(svc.CurrentProfile(), mods))
	}

	fmt.Printf("Profile: %s\n\n", render(styleHeader, svc.CurrentProfile()))
	if len(mods) == 0 {
		fmt.Println("No mods installed.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tFILES\tSIZE\tORDER\tTAGS")
	fmt.Fprintln(w, "----\t-----\t-----\t----\t-----\t----")
	for _, mod := range mods {
		state := render(styleDisabled, "disabled")
		if mod.Enabled {
			state = render(styleEnabled, "enabled")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			mod.Name, state, len(mod.Files), humanSize(mod.SizeBytes),
			mod.LoadOrder, strings.Join(mod.Tags, ","))
	}
	return w.Flush()
}

type modJSON struct {
	Name      string   `json:"name"`
	Enabled   bool     `json:"enabled"`
	Files     []string `json:"files"`
	Tags      []string `json:"tags"`
	LoadOrder int      `json:"load_order"`
	SizeBytes int64    `json:"size_bytes"`
}

func listPayload(profile string, mods []domain.Mod) map[string]any {
	out := make([]modJSON, len(mods))
	for i, m := range mods {
		out[i] = modJSON{
			Name:      m.Name,
			Enabled:   m.Enabled,
			Files:     m.Files,
			Tags:      m.Tags,
			LoadOrder: m.LoadOrder,
			SizeBytes: m.SizeBytes,
		}
	}
	return map[string]any{"profile": profile, "mods": out}
}
