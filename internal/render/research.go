// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/webscout/internal/research"
)

// Research renders a terminal research result. Failed and timed-out runs
// are marked explicitly rather than rendered as empty sections.
func Research(result research.Result) string {
	switch result.Outcome {
	case research.OutcomeFailed:
		return fmt.Sprintf("Research failed: %s", result.FailureDetail)
	case research.OutcomeTimedOut:
		return fmt.Sprintf(
			"Research timed out after %s (%d status checks). The remote task may still be running.",
			result.Elapsed.Round(time.Second), result.Polls)
	}

	var b strings.Builder

	if result.Content != "" {
		b.WriteString(result.Content)
		b.WriteString("\n")
	}

	if len(result.Sources) > 0 {
		b.WriteString("\n## Sources\n")
		for i, s := range result.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, orDefault(s.Title, "Untitled"), s.URL)
		}
	}

	if result.ResponseTime > 0 {
		fmt.Fprintf(&b, "\n*Research completed in %.1fs*", result.ResponseTime)
	}

	return b.String()
}
