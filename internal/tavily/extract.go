// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"context"
	"fmt"
)

// MaxExtractURLs is the API's cap on URLs per extract request.
const MaxExtractURLs = 20

var extractDepths = map[string]bool{
	"basic":    true,
	"advanced": true,
}

// ExtractRequest is the POST /extract payload.
type ExtractRequest struct {
	URLs          []string `json:"urls"`
	ExtractDepth  string   `json:"extract_depth"`
	IncludeImages bool     `json:"include_images"`
}

// Validate checks the request before any network call.
func (r ExtractRequest) Validate() error {
	if len(r.URLs) == 0 {
		return &ConfigError{Msg: "provide at least one URL to extract"}
	}
	if len(r.URLs) > MaxExtractURLs {
		return &ConfigError{Msg: fmt.Sprintf("maximum %d URLs per request (got %d)", MaxExtractURLs, len(r.URLs))}
	}
	if !extractDepths[r.ExtractDepth] {
		return &ConfigError{Msg: fmt.Sprintf("invalid extract depth %q", r.ExtractDepth)}
	}
	return nil
}

// ExtractResult is one successfully extracted page.
type ExtractResult struct {
	URL        string   `json:"url"`
	RawContent string   `json:"raw_content"`
	Images     []string `json:"images,omitempty"`
}

// FailedExtraction records a URL the API could not extract.
type FailedExtraction struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ExtractResponse is the POST /extract response body.
type ExtractResponse struct {
	Results       []ExtractResult    `json:"results"`
	FailedResults []FailedExtraction `json:"failed_results,omitempty"`
	Usage         Usage              `json:"usage"`
	ResponseTime  float64            `json:"response_time,omitempty"`
}

// Extract issues a single POST /extract call.
func (c *Client) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp ExtractResponse
	if err := c.post(ctx, "/extract", req, ExtractTimeout, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
