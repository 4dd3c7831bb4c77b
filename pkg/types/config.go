// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration structs shared across webscout stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that call the API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. The dispatcher clamps it to
	// the 1-180 second range the remote API supports.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ClientSource is the x-client-source header value identifying this
	// client to the API (e.g. "webscout-cli").
	ClientSource string `json:"client_source" yaml:"client_source"`
}

// ResearchConfig holds settings for the asynchronous research workflow.
type ResearchConfig struct {
	// PollInterval is the initial delay between status polls (default 2s).
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// WidenedInterval is the poll delay used once WidenAfter has elapsed
	// (default 5s). It reduces request volume on long-running tasks.
	WidenedInterval time.Duration `json:"widened_interval" yaml:"widened_interval"`

	// WidenAfter is the cumulative elapsed time after which polling
	// switches from PollInterval to WidenedInterval (default 30s).
	WidenAfter time.Duration `json:"widen_after" yaml:"widen_after"`

	// MaxWait is the total time to wait for a research task before
	// giving up with a timed-out outcome (default 5m).
	MaxWait time.Duration `json:"max_wait" yaml:"max_wait"`
}

// HistoryConfig holds settings for the local invocation log.
type HistoryConfig struct {
	// Enabled controls whether invocations are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory containing history.db (default ".webscout").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
