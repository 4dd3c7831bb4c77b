// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deepsearch composes the search and extract endpoints: an
// advanced-depth search followed by full-content extraction of the top
// results. Useful when snippets are not enough.
package deepsearch

import (
	"context"
	"fmt"

	"github.com/pdiddy/webscout/internal/tavily"
)

// API is the subset of the Tavily client this workflow uses. Tests supply
// a mock.
type API interface {
	Search(ctx context.Context, req tavily.SearchRequest) (*tavily.SearchResponse, error)
	Extract(ctx context.Context, req tavily.ExtractRequest) (*tavily.ExtractResponse, error)
}

// Options controls one deep-search run.
type Options struct {
	Topic      string
	MaxResults int
	ExtractTop int
	Days       int
}

// UsageBreakdown itemizes credit consumption across the two calls.
type UsageBreakdown struct {
	SearchCredits  float64 `json:"search_credits"`
	ExtractCredits float64 `json:"extract_credits"`
	TotalCredits   float64 `json:"total_credits"`
}

// Result is the merged outcome of the search and extract calls.
type Result struct {
	Query             string                    `json:"query"`
	Answer            string                    `json:"answer,omitempty"`
	Results           []tavily.SearchResult     `json:"results"`
	FailedExtractions []tavily.FailedExtraction `json:"failed_extractions,omitempty"`
	Usage             UsageBreakdown            `json:"usage"`
}

// Run searches with advanced depth, extracts raw content from the top
// ExtractTop result URLs, and merges the extracted content back onto the
// results. Individual extraction failures are reported in the result, not
// fatal; a search failure is.
func Run(ctx context.Context, api API, query string, opts Options) (*Result, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	if opts.ExtractTop <= 0 {
		opts.ExtractTop = 3
	}
	if opts.Topic == "" {
		opts.Topic = "general"
	}

	searchReq := tavily.SearchRequest{
		Query:         query,
		SearchDepth:   "advanced",
		Topic:         opts.Topic,
		MaxResults:    opts.MaxResults,
		IncludeAnswer: true,
	}
	// The days filter only applies to the news and finance topics.
	if opts.Days > 0 && (opts.Topic == "news" || opts.Topic == "finance") {
		searchReq.Days = opts.Days
	}

	searchResp, err := api.Search(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("search step: %w", err)
	}

	var urls []string
	for _, r := range searchResp.Results {
		if len(urls) == opts.ExtractTop {
			break
		}
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}

	result := &Result{
		Query:   query,
		Answer:  searchResp.Answer,
		Results: searchResp.Results,
		Usage: UsageBreakdown{
			SearchCredits: searchResp.Usage.Credits,
		},
	}

	if len(urls) > 0 {
		extractResp, err := api.Extract(ctx, tavily.ExtractRequest{
			URLs:         urls,
			ExtractDepth: "basic",
		})
		if err != nil {
			return nil, fmt.Errorf("extract step: %w", err)
		}

		extracted := make(map[string]string, len(extractResp.Results))
		for _, r := range extractResp.Results {
			extracted[r.URL] = r.RawContent
		}
		for i := range result.Results {
			if content, ok := extracted[result.Results[i].URL]; ok {
				result.Results[i].FullContent = content
			}
		}

		result.FailedExtractions = extractResp.FailedResults
		result.Usage.ExtractCredits = extractResp.Usage.Credits
	}

	result.Usage.TotalCredits = result.Usage.SearchCredits + result.Usage.ExtractCredits
	return result, nil
}
