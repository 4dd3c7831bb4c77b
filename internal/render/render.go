// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts API responses into human-readable text or raw
// JSON passthrough. Every function is a pure function of its input; no
// network and no I/O.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/webscout/internal/tavily"
)

// Truncation thresholds per field, in bytes. Content beyond the threshold
// is cut with an explicit marker carrying the original length; length
// information is never dropped silently.
const (
	SearchRawLimit  = 2000
	CrawlPageLimit  = 2000
	DeepSearchLimit = 3000
	ExtractLimit    = 5000
)

// Truncate cuts s to limit bytes and appends a marker reporting the
// original length. Text at or under the limit is returned unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return fmt.Sprintf("%s\n... [truncated, %d chars total]", s[:limit], len(s))
}

// JSON renders v as indented JSON, the same shape as received.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON output: %w", err)
	}
	return string(data), nil
}

// Search renders a search response. When showRaw is set, raw page content
// is preferred over snippets and truncated at SearchRawLimit.
func Search(resp *tavily.SearchResponse, showRaw bool) string {
	var b strings.Builder

	if resp.Answer != "" {
		b.WriteString("## Answer\n")
		b.WriteString(resp.Answer)
		b.WriteString("\n\n")
	}

	if len(resp.Results) > 0 {
		fmt.Fprintf(&b, "## Results (%d found)\n\n", len(resp.Results))
		for i, r := range resp.Results {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, orDefault(r.Title, "No title"))
			fmt.Fprintf(&b, "**URL:** %s\n", orDefault(r.URL, "N/A"))
			if r.Score > 0 {
				fmt.Fprintf(&b, "**Relevance:** %.2f\n", r.Score)
			}
			b.WriteString("\n")

			if showRaw && r.RawContent != "" {
				b.WriteString("**Content:**\n")
				b.WriteString(Truncate(r.RawContent, SearchRawLimit))
				b.WriteString("\n")
			} else if r.Content != "" {
				b.WriteString(r.Content)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Credits used: %.0f*", resp.Usage.Credits)
	return b.String()
}

// Extract renders an extraction response: per-page content, image lists,
// and a failed-extraction section when any URL could not be processed.
func Extract(resp *tavily.ExtractResponse) string {
	var b strings.Builder

	if len(resp.Results) > 0 {
		fmt.Fprintf(&b, "## Extracted Content (%d pages)\n\n", len(resp.Results))
		for i, r := range resp.Results {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, orDefault(r.URL, "Unknown URL"))

			if r.RawContent != "" {
				b.WriteString(Truncate(r.RawContent, ExtractLimit))
			} else {
				b.WriteString("*No content extracted*")
			}
			b.WriteString("\n")

			if len(r.Images) > 0 {
				fmt.Fprintf(&b, "\n**Images (%d):**\n", len(r.Images))
				for j, img := range r.Images {
					if j == 5 {
						fmt.Fprintf(&b, "- ... and %d more\n", len(r.Images)-5)
						break
					}
					fmt.Fprintf(&b, "- %s\n", img)
				}
			}

			b.WriteString("\n---\n\n")
		}
	}

	if len(resp.FailedResults) > 0 {
		fmt.Fprintf(&b, "## Failed Extractions (%d)\n", len(resp.FailedResults))
		for _, f := range resp.FailedResults {
			fmt.Fprintf(&b, "- %s: %s\n", orDefault(f.URL, "Unknown"), orDefault(f.Error, "Unknown error"))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "*Credits used: %.0f*", resp.Usage.Credits)
	return b.String()
}

// Sitemap renders a site-map response as a numbered URL list.
func Sitemap(resp *tavily.SitemapResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Site Map: %s\n", resp.BaseURL)
	fmt.Fprintf(&b, "%d URLs found\n\n", len(resp.Results))

	for i, u := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}

	if resp.ResponseTime > 0 {
		fmt.Fprintf(&b, "\n*Completed in %.1fs*", resp.ResponseTime)
	}
	return b.String()
}

// Crawl renders a crawl response with per-page content.
func Crawl(resp *tavily.CrawlResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Crawl Results: %s\n", resp.BaseURL)
	fmt.Fprintf(&b, "%d pages crawled\n\n", len(resp.Results))

	for i, p := range resp.Results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, orDefault(p.URL, "Unknown URL"))
		if p.RawContent != "" {
			b.WriteString(Truncate(p.RawContent, CrawlPageLimit))
		} else {
			b.WriteString("*No content extracted*")
		}
		b.WriteString("\n\n---\n\n")
	}

	if resp.ResponseTime > 0 {
		fmt.Fprintf(&b, "*Crawl completed in %.1fs*", resp.ResponseTime)
	}
	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
