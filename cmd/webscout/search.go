// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/internal/tavily"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the web, optimized for LLM consumption",
	Long: `Search issues a single web search against the Tavily API and renders
the ranked results. Use --include-answer for an AI-generated summary and
--include-raw-content for full page text instead of snippets.

A search can be saved with --save and re-rendered later with --load
without spending API credits.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("depth", "basic", "search depth: ultra-fast, fast, basic, or advanced")
	searchCmd.Flags().String("topic", "general", "search topic: general, news, or finance")
	searchCmd.Flags().Int("max-results", 5, "maximum number of results")
	searchCmd.Flags().Bool("include-answer", false, "include an AI-generated answer")
	searchCmd.Flags().Bool("include-raw-content", false, "include full page content, not just snippets")
	searchCmd.Flags().Bool("include-images", false, "include image results")
	searchCmd.Flags().Int("days", 0, "filter to the last N days (news/finance only)")
	searchCmd.Flags().String("time-range", "", "filter by time range: day, week, month, or year")
	searchCmd.Flags().Int("chunks-per-source", 0, "chunks per source 1-5 (advanced/fast only)")
	searchCmd.Flags().String("include-domains", "", "comma-separated domains to include")
	searchCmd.Flags().String("exclude-domains", "", "comma-separated domains to exclude")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "render a previously saved query file instead of searching")
	searchCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	showRaw, _ := cmd.Flags().GetBool("include-raw-content")

	// Saved query files replay without a network call or an API key.
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		qf, err := tavily.ReadQueryFile(loadPath)
		if err != nil {
			return err
		}
		return emitSearch(qf.ToResponse(), jsonOutput, showRaw)
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	depth, _ := cmd.Flags().GetString("depth")
	topic, _ := cmd.Flags().GetString("topic")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	includeAnswer, _ := cmd.Flags().GetBool("include-answer")
	includeImages, _ := cmd.Flags().GetBool("include-images")
	days, _ := cmd.Flags().GetInt("days")
	timeRange, _ := cmd.Flags().GetString("time-range")
	chunks, _ := cmd.Flags().GetInt("chunks-per-source")

	req := tavily.SearchRequest{
		Query:             args[0],
		SearchDepth:       depth,
		Topic:             topic,
		MaxResults:        maxResults,
		IncludeAnswer:     includeAnswer,
		IncludeRawContent: showRaw,
		IncludeImages:     includeImages,
		Days:              days,
		TimeRange:         timeRange,
		ChunksPerSource:   chunks,
		IncludeDomains:    splitFlag(cmd, "include-domains"),
		ExcludeDomains:    splitFlag(cmd, "exclude-domains"),
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := tavily.WriteQueryFile(savePath, req, resp); err != nil {
			return err
		}
	}

	recordRun(cmd, "search", req.Query, "ok", resp.Usage.Credits, resp.ResponseTime)
	return emitSearch(resp, jsonOutput, showRaw)
}

func emitSearch(resp *tavily.SearchResponse, jsonOutput, showRaw bool) error {
	if jsonOutput {
		out, err := render.JSON(resp)
		if err != nil {
			return err
		}
		return emit(out, "")
	}
	return emit(render.Search(resp, showRaw), "")
}
