package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent mod management events",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "number of events to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	events, err := svc.Journal().Recent(historyLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		type eventJSON struct {
			Action    string `json:"action"`
			Mod       string `json:"mod,omitempty"`
			Profile   string `json:"profile"`
			Detail    string `json:"detail,omitempty"`
			CreatedAt string `json:"created_at"`
		}
		out := make([]eventJSON, len(events))
		for i, e := range events {
			out[i] = eventJSON{
				Action:    e.Action,
				Mod:       e.ModName,
				Profile:   e.Profile,
				Detail:    e.Detail,
				CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tMOD\tPROFILE\tDETAIL")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.ModName, e.Profile, e.Detail)
	}
	return w.Flush()
}
