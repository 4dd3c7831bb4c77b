// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var crawlFormats = map[string]bool{
	"markdown": true,
	"text":     true,
}

// CrawlRequest is the POST /crawl payload.
type CrawlRequest struct {
	URL             string   `json:"url"`
	MaxDepth        int      `json:"max_depth"`
	MaxBreadth      int      `json:"max_breadth"`
	Limit           int      `json:"limit"`
	ExtractDepth    string   `json:"extract_depth"`
	Format          string   `json:"format"`
	AllowExternal   bool     `json:"allow_external"`
	Timeout         int      `json:"timeout"`
	Instructions    string   `json:"instructions,omitempty"`
	ChunksPerSource int      `json:"chunks_per_source,omitempty"`
	SelectPaths     []string `json:"select_paths,omitempty"`
	ExcludePaths    []string `json:"exclude_paths,omitempty"`
}

// Validate checks the request before any network call.
func (r CrawlRequest) Validate() error {
	if r.URL == "" {
		return &ConfigError{Msg: "provide a root URL to crawl"}
	}
	if r.MaxDepth < 1 || r.MaxDepth > 5 {
		return &ConfigError{Msg: fmt.Sprintf("max depth must be between 1 and 5 (got %d)", r.MaxDepth)}
	}
	if !extractDepths[r.ExtractDepth] {
		return &ConfigError{Msg: fmt.Sprintf("invalid extract depth %q", r.ExtractDepth)}
	}
	if !crawlFormats[r.Format] {
		return &ConfigError{Msg: fmt.Sprintf("invalid format %q", r.Format)}
	}
	if r.ChunksPerSource != 0 && (r.ChunksPerSource < 1 || r.ChunksPerSource > 5) {
		return &ConfigError{Msg: "chunks per source must be between 1 and 5"}
	}
	if r.ChunksPerSource != 0 && r.Instructions == "" {
		return &ConfigError{Msg: "chunks per source requires instructions"}
	}
	return nil
}

// CrawlPage is one crawled page with its extracted content.
type CrawlPage struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

// CrawlResponse is the POST /crawl response body.
type CrawlResponse struct {
	BaseURL      string      `json:"base_url"`
	Results      []CrawlPage `json:"results"`
	ResponseTime float64     `json:"response_time,omitempty"`
}

// Crawl issues a single POST /crawl call.
func (c *Client) Crawl(ctx context.Context, req CrawlRequest) (*CrawlResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp CrawlResponse
	if err := c.post(ctx, "/crawl", req, CrawlTimeout, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var (
	schemePattern = regexp.MustCompile(`^https?://`)
	unsafePattern = regexp.MustCompile(`[/:?&=]`)
)

// PageFilename converts a page URL to a safe markdown filename.
func PageFilename(pageURL string) string {
	name := schemePattern.ReplaceAllString(pageURL, "")
	name = unsafePattern.ReplaceAllString(name, "_")
	if len(name) > 100 {
		name = name[:100]
	}
	return name + ".md"
}

// SavePages writes each crawled page with content as a markdown file under
// dir, creating it if needed. It returns the paths written.
func SavePages(pages []CrawlPage, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var saved []string
	for _, p := range pages {
		if p.RawContent == "" {
			continue
		}
		path := filepath.Join(dir, PageFilename(p.URL))
		content := fmt.Sprintf("# %s\n\n%s", p.URL, p.RawContent)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return saved, fmt.Errorf("writing %s: %w", path, err)
		}
		saved = append(saved, path)
	}
	return saved, nil
}
