// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/webscout/internal/deepsearch"
	"github.com/pdiddy/webscout/internal/render"
)

var deepSearchCmd = &cobra.Command{
	Use:   "deep-search [query]",
	Short: "Search and extract full content in one step",
	Long: `Deep-search runs an advanced-depth search, then extracts the full
content of the top results. Typical cost: 2 credits for the search plus
1 credit per 5 extracted pages.`,
	RunE: runDeepSearch,
}

func init() {
	deepSearchCmd.Flags().String("topic", "general", "search topic: general, news, or finance")
	deepSearchCmd.Flags().Int("max-results", 5, "maximum search results")
	deepSearchCmd.Flags().Int("extract-top", 3, "extract full content from the top N results")
	deepSearchCmd.Flags().Int("days", 0, "filter to the last N days (news/finance only)")
	deepSearchCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(deepSearchCmd)
}

func runDeepSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	topic, _ := cmd.Flags().GetString("topic")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	extractTop, _ := cmd.Flags().GetInt("extract-top")
	days, _ := cmd.Flags().GetInt("days")

	client, err := newClient()
	if err != nil {
		return err
	}

	log.Info("deep search", "query", args[0], "extract_top", extractTop)

	result, err := deepsearch.Run(cmd.Context(), client, args[0], deepsearch.Options{
		Topic:      topic,
		MaxResults: maxResults,
		ExtractTop: extractTop,
		Days:       days,
	})
	if err != nil {
		return err
	}

	recordRun(cmd, "deep-search", args[0], "ok", result.Usage.TotalCredits, 0)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := render.JSON(result)
		if err != nil {
			return err
		}
		return emit(out, "")
	}
	return emit(render.DeepSearch(result), "")
}
