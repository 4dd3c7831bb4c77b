// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/internal/tavily"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [url]",
	Short: "Crawl a website and extract page content",
	Long: `Crawl walks a site from a root URL and extracts each page. Use
--output-dir to save every page as a markdown file named after its URL.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().Int("max-depth", 1, "crawl depth 1-5")
	crawlCmd.Flags().Int("max-breadth", 20, "links followed per page")
	crawlCmd.Flags().Int("limit", 50, "total pages cap")
	crawlCmd.Flags().String("instructions", "", "natural language focus guidance")
	crawlCmd.Flags().Int("chunks-per-source", 0, "chunks per page 1-5 (requires --instructions)")
	crawlCmd.Flags().String("extract-depth", "basic", "extraction depth: basic or advanced")
	crawlCmd.Flags().String("format", "markdown", "page content format: markdown or text")
	crawlCmd.Flags().String("select-paths", "", "comma-separated regex patterns to include")
	crawlCmd.Flags().String("exclude-paths", "", "comma-separated regex patterns to exclude")
	crawlCmd.Flags().Bool("allow-external", true, "follow links to external domains")
	crawlCmd.Flags().Int("timeout", 150, "maximum crawl wait in seconds")
	crawlCmd.Flags().String("output-dir", "", "save each page as a markdown file in this directory")
	crawlCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a root URL to crawl")
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	maxBreadth, _ := cmd.Flags().GetInt("max-breadth")
	limit, _ := cmd.Flags().GetInt("limit")
	instructions, _ := cmd.Flags().GetString("instructions")
	chunks, _ := cmd.Flags().GetInt("chunks-per-source")
	extractDepth, _ := cmd.Flags().GetString("extract-depth")
	format, _ := cmd.Flags().GetString("format")
	allowExternal, _ := cmd.Flags().GetBool("allow-external")
	timeout, _ := cmd.Flags().GetInt("timeout")

	req := tavily.CrawlRequest{
		URL:             args[0],
		MaxDepth:        maxDepth,
		MaxBreadth:      maxBreadth,
		Limit:           limit,
		ExtractDepth:    extractDepth,
		Format:          format,
		AllowExternal:   allowExternal,
		Timeout:         timeout,
		Instructions:    instructions,
		ChunksPerSource: chunks,
		SelectPaths:     splitFlag(cmd, "select-paths"),
		ExcludePaths:    splitFlag(cmd, "exclude-paths"),
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	log.Info("crawling", "url", req.URL, "max_depth", req.MaxDepth, "limit", req.Limit)

	resp, err := client.Crawl(cmd.Context(), req)
	if err != nil {
		return err
	}

	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		saved, err := tavily.SavePages(resp.Results, outputDir)
		if err != nil {
			return err
		}
		log.Info("crawl pages saved", "count", len(saved), "dir", outputDir)
	}

	recordRun(cmd, "crawl", req.URL, "ok", 0, resp.ResponseTime)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := render.JSON(resp)
		if err != nil {
			return err
		}
		return emit(out, "")
	}
	return emit(render.Crawl(resp), "")
}
