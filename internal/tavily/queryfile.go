// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and re-rendered later without spending
// API credits on a fresh query.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Results []SearchResult `yaml:"results"`
	Answer  string         `yaml:"answer,omitempty"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the search parameters in a serializable form.
type QueryParams struct {
	Query      string `yaml:"query"`
	Depth      string `yaml:"depth"`
	Topic      string `yaml:"topic"`
	MaxResults int    `yaml:"max_results"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total        int       `yaml:"total"`
	Credits      float64   `yaml:"credits"`
	ResponseTime float64   `yaml:"response_time,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search request and its response to a YAML file.
func WriteQueryFile(path string, req SearchRequest, resp *SearchResponse) error {
	qf := QueryFile{
		Query: QueryParams{
			Query:      req.Query,
			Depth:      req.SearchDepth,
			Topic:      req.Topic,
			MaxResults: req.MaxResults,
		},
		Results: resp.Results,
		Answer:  resp.Answer,
		Summary: QuerySummary{
			Total:        len(resp.Results),
			Credits:      resp.Usage.Credits,
			ResponseTime: resp.ResponseTime,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToResponse reconstructs a SearchResponse from the stored file so saved
// searches render through the same formatter as live ones.
func (qf *QueryFile) ToResponse() *SearchResponse {
	return &SearchResponse{
		Query:        qf.Query.Query,
		Answer:       qf.Answer,
		Results:      qf.Results,
		Usage:        Usage{Credits: qf.Summary.Credits},
		ResponseTime: qf.Summary.ResponseTime,
	}
}
