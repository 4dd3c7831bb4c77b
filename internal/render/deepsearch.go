// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/webscout/internal/deepsearch"
)

// DeepSearch renders a merged search-plus-extract result with full page
// content where extraction succeeded.
func DeepSearch(result *deepsearch.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Deep Search: %s\n\n", result.Query)

	if result.Answer != "" {
		b.WriteString("## Summary\n")
		b.WriteString(result.Answer)
		b.WriteString("\n\n")
	}

	if len(result.Results) > 0 {
		fmt.Fprintf(&b, "## Sources (%d found)\n\n", len(result.Results))
		for i, r := range result.Results {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, orDefault(r.Title, "No title"))
			fmt.Fprintf(&b, "**URL:** %s\n\n", orDefault(r.URL, "N/A"))

			if r.FullContent != "" {
				b.WriteString(Truncate(r.FullContent, DeepSearchLimit))
				b.WriteString("\n")
			} else if r.Content != "" {
				fmt.Fprintf(&b, "*Snippet:* %s\n", r.Content)
			}

			b.WriteString("\n---\n\n")
		}
	}

	u := result.Usage
	fmt.Fprintf(&b, "*Credits: %.0f search + %.0f extract = %.0f total*",
		u.SearchCredits, u.ExtractCredits, u.TotalCredits)
	return b.String()
}
