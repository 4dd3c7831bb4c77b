// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tavily dispatches requests to the Tavily web-research API and
// decodes its responses into typed structs.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/webscout/pkg/types"
)

// APIBase is the Tavily API root. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://api.tavily.com"

// Per-endpoint request timeouts, matching the latency profile of each
// operation. The API rejects timeouts outside the 1-180 second range.
const (
	SearchTimeout  = 30 * time.Second
	ExtractTimeout = 60 * time.Second
	SitemapTimeout = 60 * time.Second
	CrawlTimeout   = 180 * time.Second
	SubmitTimeout  = 60 * time.Second
	PollTimeout    = 30 * time.Second

	minTimeout = 1 * time.Second
	maxTimeout = 180 * time.Second

	defaultClientSource = "webscout-cli"
)

// DispatchResult is the outcome of a single HTTP exchange: the status code
// and the raw response body. It is returned for every status code,
// including non-2xx; interpreting the status belongs to the caller.
type DispatchResult struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *DispatchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into v.
func (r *DispatchResult) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &ProtocolError{Msg: fmt.Sprintf("parsing API response: %v", err)}
	}
	return nil
}

// Client issues authenticated requests against the Tavily API. Each call
// makes exactly one network attempt; nothing is retried at this layer.
type Client struct {
	apiKey       string
	clientSource string
	httpClient   *http.Client
}

// NewClient returns a Client using the given API key. The key is checked
// lazily on each dispatch so callers can construct a Client before
// resolving credentials.
func NewClient(apiKey string, cfg types.HTTPConfig) *Client {
	source := cfg.ClientSource
	if source == "" {
		source = defaultClientSource
	}
	return &Client{
		apiKey:       apiKey,
		clientSource: source,
		httpClient:   &http.Client{},
	}
}

// Do sends one request to path under APIBase and returns the raw result.
// A nil body sends no payload. The returned error is a *ConfigError when
// the API key is empty (no network call is made) or a *TransportError
// when no HTTP response was obtained. Non-2xx responses are not errors
// here; they come back as a DispatchResult for the caller to interpret.
func (c *Client) Do(ctx context.Context, method, path string, body any, timeout time.Duration) (*DispatchResult, error) {
	if c.apiKey == "" {
		return nil, &ConfigError{Msg: "TAVILY_API_KEY is not set"}
	}

	if timeout < minTimeout {
		timeout = minTimeout
	}
	if timeout > maxTimeout {
		timeout = maxTimeout
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, APIBase+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-source", c.clientSource)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok {
			err = urlErr.Err
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return &DispatchResult{StatusCode: resp.StatusCode, Body: data}, nil
}

// post dispatches a validated request and decodes a 2xx response into out.
func (c *Client) post(ctx context.Context, path string, body any, timeout time.Duration, out any) error {
	result, err := c.Do(ctx, http.MethodPost, path, body, timeout)
	if err != nil {
		return err
	}
	if !result.OK() {
		return &RemoteError{StatusCode: result.StatusCode, Body: string(result.Body)}
	}
	return result.Decode(out)
}
