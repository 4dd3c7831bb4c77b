// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs the asynchronous research workflow: submit a task,
// poll its status with a widening interval, and stop on a terminal state
// or the deadline. The loop is strictly sequential; there is never more
// than one outstanding status check, and polling never mutates remote
// task state.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/webscout/internal/tavily"
	"github.com/pdiddy/webscout/pkg/types"
)

// Dispatcher abstracts the HTTP layer so tests can supply a fake that
// records calls and scripts responses.
type Dispatcher interface {
	Do(ctx context.Context, method, path string, body any, timeout time.Duration) (*tavily.DispatchResult, error)
}

// Clock abstracts time so the poll loop is testable without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Models and citation formats accepted by the research endpoint.
var (
	models = map[string]bool{
		"mini": true,
		"pro":  true,
		"auto": true,
	}
	citationFormats = map[string]bool{
		"numbered": true,
		"mla":      true,
		"apa":      true,
		"chicago":  true,
	}
)

// Request describes a research task to submit.
type Request struct {
	Input          string          `json:"input"`
	Model          string          `json:"model"`
	Stream         bool            `json:"stream"`
	CitationFormat string          `json:"citation_format"`
	OutputSchema   json.RawMessage `json:"output_schema,omitempty"`
}

// Validate checks the request before any network call.
func (r Request) Validate() error {
	if r.Input == "" {
		return &tavily.ConfigError{Msg: "research input must not be empty"}
	}
	if !models[r.Model] {
		return &tavily.ConfigError{Msg: fmt.Sprintf("invalid model %q", r.Model)}
	}
	if !citationFormats[r.CitationFormat] {
		return &tavily.ConfigError{Msg: fmt.Sprintf("invalid citation format %q", r.CitationFormat)}
	}
	return nil
}

// Source is one cited source in a completed research result.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Outcome is the terminal state of one research run.
type Outcome string

const (
	// OutcomeDone means the remote task completed with a result payload.
	OutcomeDone Outcome = "done"

	// OutcomeFailed means the remote side reported the task as failed.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimedOut means the deadline expired while the task was still
	// pending. The remote task may still be running; this client simply
	// gave up observing it.
	OutcomeTimedOut Outcome = "timed_out"
)

// Result is the terminal outcome of a research run. Content and Sources
// are carried verbatim from the completing poll response.
type Result struct {
	Outcome       Outcome         `json:"outcome"`
	Content       string          `json:"content,omitempty"`
	Sources       []Source        `json:"sources,omitempty"`
	Output        json.RawMessage `json:"output,omitempty"`
	ResponseTime  float64         `json:"response_time,omitempty"`
	FailureDetail string          `json:"failure_detail,omitempty"`
	Polls         int             `json:"polls"`
	Elapsed       time.Duration   `json:"elapsed"`
}

// submitResponse is the POST /research response body.
type submitResponse struct {
	RequestID string `json:"request_id"`
	ID        string `json:"id"`
}

// pollResponse is the GET /research/{id} response body.
type pollResponse struct {
	Status       string          `json:"status"`
	Content      string          `json:"content"`
	Sources      []Source        `json:"sources"`
	Output       json.RawMessage `json:"output,omitempty"`
	ResponseTime float64         `json:"response_time,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Runner drives one research task from submission to a terminal state.
type Runner struct {
	disp  Dispatcher
	clock Clock
	cfg   types.ResearchConfig
}

// NewRunner returns a Runner with the real clock. Zero config fields fall
// back to the defaults (2s poll, 5s widened after 30s, 5m max wait).
func NewRunner(disp Dispatcher, cfg types.ResearchConfig) *Runner {
	return NewRunnerWithClock(disp, cfg, realClock{})
}

// NewRunnerWithClock is NewRunner with an injected clock for tests.
func NewRunnerWithClock(disp Dispatcher, cfg types.ResearchConfig, clock Clock) *Runner {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.WidenedInterval <= 0 {
		cfg.WidenedInterval = 5 * time.Second
	}
	if cfg.WidenAfter <= 0 {
		cfg.WidenAfter = 30 * time.Second
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 5 * time.Minute
	}
	return &Runner{disp: disp, clock: clock, cfg: cfg}
}

// Run executes the full submit-and-poll workflow. On a nil error the
// Result holds exactly one terminal outcome: done, failed, or timed out.
// A non-nil error means the workflow aborted before reaching a terminal
// task state: invalid request, missing credential, transport failure,
// non-2xx response, or a response violating the API contract.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	id, err := r.submit(ctx, req)
	if err != nil {
		return Result{}, err
	}

	return r.poll(ctx, id)
}

// submit dispatches the task-creation call and extracts the task handle.
func (r *Runner) submit(ctx context.Context, req Request) (string, error) {
	result, err := r.disp.Do(ctx, http.MethodPost, "/research", req, tavily.SubmitTimeout)
	if err != nil {
		return "", err
	}
	if !result.OK() {
		return "", &tavily.RemoteError{StatusCode: result.StatusCode, Body: string(result.Body)}
	}

	var resp submitResponse
	if err := result.Decode(&resp); err != nil {
		return "", err
	}

	id := resp.RequestID
	if id == "" {
		id = resp.ID
	}
	if id == "" {
		return "", &tavily.ProtocolError{Msg: "research submission returned no identifier"}
	}
	return id, nil
}

// poll repeatedly checks the task status until a terminal state or the
// deadline. Each iteration: one status call, then either return, or sleep
// the current interval and check the deadline and context.
func (r *Runner) poll(ctx context.Context, id string) (Result, error) {
	start := r.clock.Now()
	polls := 0

	for {
		result, err := r.disp.Do(ctx, http.MethodGet, "/research/"+id, nil, tavily.PollTimeout)
		if err != nil {
			return Result{}, err
		}
		polls++
		elapsed := r.clock.Now().Sub(start)

		// 202 is an authoritative "still pending" signal with no body
		// guarantee, even when a body is present.
		if result.StatusCode != http.StatusAccepted {
			if !result.OK() {
				return Result{}, &tavily.RemoteError{StatusCode: result.StatusCode, Body: string(result.Body)}
			}

			var resp pollResponse
			if err := result.Decode(&resp); err != nil {
				return Result{}, err
			}

			switch resp.Status {
			case "completed":
				return Result{
					Outcome:      OutcomeDone,
					Content:      resp.Content,
					Sources:      resp.Sources,
					Output:       resp.Output,
					ResponseTime: resp.ResponseTime,
					Polls:        polls,
					Elapsed:      elapsed,
				}, nil
			case "failed":
				detail := resp.Error
				if detail == "" {
					detail = "task failed with no error detail"
				}
				return Result{
					Outcome:       OutcomeFailed,
					FailureDetail: detail,
					Polls:         polls,
					Elapsed:       elapsed,
				}, nil
			case "pending", "":
				// Still running; fall through to the wait below.
			default:
				return Result{}, &tavily.ProtocolError{Msg: fmt.Sprintf("unexpected task status %q", resp.Status)}
			}
		}

		if elapsed > r.cfg.MaxWait {
			return Result{
				Outcome: OutcomeTimedOut,
				Polls:   polls,
				Elapsed: elapsed,
			}, nil
		}

		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		r.clock.Sleep(r.interval(elapsed))
	}
}

// interval returns the current poll interval: the short initial interval,
// widened once the cumulative elapsed time crosses the threshold. It
// never narrows over the course of a run.
func (r *Runner) interval(elapsed time.Duration) time.Duration {
	if elapsed >= r.cfg.WidenAfter {
		return r.cfg.WidenedInterval
	}
	return r.cfg.PollInterval
}
