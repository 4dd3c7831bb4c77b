// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"context"
	"fmt"
)

// SitemapRequest is the POST /map payload. The endpoint discovers URLs on
// a site without extracting page content, so it is faster than a crawl.
type SitemapRequest struct {
	URL           string   `json:"url"`
	MaxDepth      int      `json:"max_depth"`
	MaxBreadth    int      `json:"max_breadth"`
	Limit         int      `json:"limit"`
	AllowExternal bool     `json:"allow_external"`
	Instructions  string   `json:"instructions,omitempty"`
	SelectPaths   []string `json:"select_paths,omitempty"`
	ExcludePaths  []string `json:"exclude_paths,omitempty"`
}

// Validate checks the request before any network call.
func (r SitemapRequest) Validate() error {
	if r.URL == "" {
		return &ConfigError{Msg: "provide a root URL to map"}
	}
	if r.MaxDepth < 1 || r.MaxDepth > 5 {
		return &ConfigError{Msg: fmt.Sprintf("max depth must be between 1 and 5 (got %d)", r.MaxDepth)}
	}
	return nil
}

// SitemapResponse is the POST /map response body. Results are bare URLs.
type SitemapResponse struct {
	BaseURL      string   `json:"base_url"`
	Results      []string `json:"results"`
	ResponseTime float64  `json:"response_time,omitempty"`
}

// Sitemap issues a single POST /map call.
func (c *Client) Sitemap(ctx context.Context, req SitemapRequest) (*SitemapResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp SitemapResponse
	if err := c.post(ctx, "/map", req, SitemapTimeout, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
