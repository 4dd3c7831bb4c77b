// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"context"
	"fmt"
)

// Search depth levels accepted by the API, slowest to fastest to rank.
var searchDepths = map[string]bool{
	"ultra-fast": true,
	"fast":       true,
	"basic":      true,
	"advanced":   true,
}

var searchTopics = map[string]bool{
	"general": true,
	"news":    true,
	"finance": true,
}

var timeRanges = map[string]bool{
	"day":   true,
	"week":  true,
	"month": true,
	"year":  true,
}

// SearchRequest is the POST /search payload. Optional fields are omitted
// from the wire format when unset.
type SearchRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	Topic             string   `json:"topic"`
	MaxResults        int      `json:"max_results"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
	IncludeImages     bool     `json:"include_images"`
	Days              int      `json:"days,omitempty"`
	TimeRange         string   `json:"time_range,omitempty"`
	ChunksPerSource   int      `json:"chunks_per_source,omitempty"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
}

// Validate checks the request before any network call.
func (r SearchRequest) Validate() error {
	if r.Query == "" {
		return &ConfigError{Msg: "search query must not be empty"}
	}
	if !searchDepths[r.SearchDepth] {
		return &ConfigError{Msg: fmt.Sprintf("invalid search depth %q", r.SearchDepth)}
	}
	if !searchTopics[r.Topic] {
		return &ConfigError{Msg: fmt.Sprintf("invalid topic %q", r.Topic)}
	}
	if r.TimeRange != "" && !timeRanges[r.TimeRange] {
		return &ConfigError{Msg: fmt.Sprintf("invalid time range %q", r.TimeRange)}
	}
	if r.ChunksPerSource != 0 && (r.ChunksPerSource < 1 || r.ChunksPerSource > 5) {
		return &ConfigError{Msg: "chunks per source must be between 1 and 5"}
	}
	return nil
}

// SearchResult is one entry in a search response.
type SearchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content,omitempty"`
	Score      float64 `json:"score,omitempty"`

	// FullContent is filled in by the deep-search workflow from a
	// follow-up extract call; the search endpoint never sets it.
	FullContent string `json:"full_content,omitempty"`
}

// Usage reports API credit consumption for a call.
type Usage struct {
	Credits float64 `json:"credits"`
}

// SearchResponse is the POST /search response body.
type SearchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer,omitempty"`
	Results      []SearchResult `json:"results"`
	Images       []string       `json:"images,omitempty"`
	Usage        Usage          `json:"usage"`
	ResponseTime float64        `json:"response_time,omitempty"`
}

// Search issues a single POST /search call.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp SearchResponse
	if err := c.post(ctx, "/search", req, SearchTimeout, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
