// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/webscout/internal/history"
	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past invocations from the local history log",
	Long: `History lists recent webscout invocations recorded in the local
SQLite log, newest first. Recording can be disabled per invocation with
--no-history or permanently with history.enabled: false in the config.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "number of entries to show (default 20)")
	historyCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := render.JSON(entries)
		if err != nil {
			return err
		}
		return emit(out, "")
	}

	if len(entries) == 0 {
		fmt.Println("No history recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-12s  %-40s  %-9s  %-7s  %s\n",
		"ID", "Started", "Command", "Input", "Outcome", "Credits", "Time")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))

	for _, e := range entries {
		input := e.Input
		if len(input) > 40 {
			input = input[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-12s  %-40s  %-9s  %-7.0f  %.1fs\n",
			e.ID, e.StartedAt.Local().Format(time.DateTime), e.Command, input,
			e.Outcome, e.Credits, e.ResponseTime)
	}
	return nil
}
