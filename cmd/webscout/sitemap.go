// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/internal/tavily"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap [url]",
	Short: "Discover URLs on a website (faster than a crawl)",
	Long: `Sitemap maps the link structure of a site without extracting page
content. Use --instructions for natural-language focus guidance and
--select-paths/--exclude-paths for regex path filters.`,
	RunE: runSitemap,
}

func init() {
	sitemapCmd.Flags().Int("max-depth", 1, "crawl depth 1-5")
	sitemapCmd.Flags().Int("max-breadth", 20, "links followed per page")
	sitemapCmd.Flags().Int("limit", 50, "total URLs cap")
	sitemapCmd.Flags().String("instructions", "", "natural language focus guidance")
	sitemapCmd.Flags().String("select-paths", "", "comma-separated regex patterns to include")
	sitemapCmd.Flags().String("exclude-paths", "", "comma-separated regex patterns to exclude")
	sitemapCmd.Flags().Bool("allow-external", true, "follow links to external domains")
	sitemapCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(sitemapCmd)
}

func runSitemap(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a root URL to map")
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	maxBreadth, _ := cmd.Flags().GetInt("max-breadth")
	limit, _ := cmd.Flags().GetInt("limit")
	instructions, _ := cmd.Flags().GetString("instructions")
	allowExternal, _ := cmd.Flags().GetBool("allow-external")

	req := tavily.SitemapRequest{
		URL:           args[0],
		MaxDepth:      maxDepth,
		MaxBreadth:    maxBreadth,
		Limit:         limit,
		AllowExternal: allowExternal,
		Instructions:  instructions,
		SelectPaths:   splitFlag(cmd, "select-paths"),
		ExcludePaths:  splitFlag(cmd, "exclude-paths"),
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Sitemap(cmd.Context(), req)
	if err != nil {
		return err
	}

	recordRun(cmd, "sitemap", req.URL, "ok", 0, resp.ResponseTime)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := render.JSON(resp)
		if err != nil {
			return err
		}
		return emit(out, "")
	}
	return emit(render.Sitemap(resp), "")
}
