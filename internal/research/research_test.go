// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/webscout/internal/tavily"
	"github.com/pdiddy/webscout/pkg/types"
)

// --- fakes ---

// step is one scripted dispatcher response.
type step struct {
	status int
	body   string
	err    error
}

// fakeDispatcher replays scripted responses: one for the submission call,
// then one per poll, and records every call it receives.
type fakeDispatcher struct {
	submit step
	polls  []step

	submitCalls int
	pollCalls   int
	pollPaths   []string
}

func (f *fakeDispatcher) Do(_ context.Context, method, path string, _ any, _ time.Duration) (*tavily.DispatchResult, error) {
	if method == http.MethodPost {
		f.submitCalls++
		if f.submit.err != nil {
			return nil, f.submit.err
		}
		return &tavily.DispatchResult{StatusCode: f.submit.status, Body: []byte(f.submit.body)}, nil
	}

	f.pollPaths = append(f.pollPaths, path)
	if f.pollCalls >= len(f.polls) {
		panic("poll loop exceeded scripted responses")
	}
	s := f.polls[f.pollCalls]
	f.pollCalls++
	if s.err != nil {
		return nil, s.err
	}
	return &tavily.DispatchResult{StatusCode: s.status, Body: []byte(s.body)}, nil
}

// fakeClock advances instantly on Sleep and records every sleep duration.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func defaultCfg() types.ResearchConfig {
	return types.ResearchConfig{
		PollInterval:    2 * time.Second,
		WidenedInterval: 5 * time.Second,
		WidenAfter:      30 * time.Second,
		MaxWait:         300 * time.Second,
	}
}

func validReq() Request {
	return Request{Input: "What is RAG?", Model: "auto", CitationFormat: "numbered"}
}

func newTestRunner(disp *fakeDispatcher, cfg types.ResearchConfig) (*Runner, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
	return NewRunnerWithClock(disp, cfg, clock), clock
}

// --- request validation ---

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    Request
		errMsg string
	}{
		{"valid", validReq(), ""},
		{"empty input", Request{Model: "auto", CitationFormat: "numbered"}, "must not be empty"},
		{"bad model", Request{Input: "x", Model: "turbo", CitationFormat: "numbered"}, "invalid model"},
		{"bad citation format", Request{Input: "x", Model: "mini", CitationFormat: "ieee"}, "invalid citation format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

// --- terminal outcomes ---

func TestRunCompletesAfterPending(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"abc123"}`},
		polls: []step{
			{status: 202, body: `{"status":"pending"}`},
			{status: 202, body: `{"status":"pending"}`},
			{status: 200, body: `{"status":"completed","content":"X","sources":[{"url":"https://a","title":"A"}],"response_time":41.5}`},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err)

	assert.Equal(t, OutcomeDone, result.Outcome)
	assert.Equal(t, "X", result.Content)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "https://a", result.Sources[0].URL)
	assert.Equal(t, "A", result.Sources[0].Title)
	assert.InDelta(t, 41.5, result.ResponseTime, 1e-9)
	assert.Equal(t, 3, result.Polls)
	assert.Equal(t, 3, disp.pollCalls, "exactly 3 poll calls")
	assert.Equal(t, []string{"/research/abc123", "/research/abc123", "/research/abc123"}, disp.pollPaths)
}

func TestRunImmediateCompletion(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 201, body: `{"request_id":"r1"}`},
		polls:  []step{{status: 200, body: `{"status":"completed","content":"done"}`}},
	}
	runner, clock := newTestRunner(disp, defaultCfg())

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err)

	assert.Equal(t, OutcomeDone, result.Outcome)
	assert.Empty(t, clock.sleeps, "no sleep before the first poll resolves")
}

func TestRunRemoteFailureStatus(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls: []step{
			{status: 202, body: ``},
			{status: 200, body: `{"status":"failed","error":"no sources found"}`},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err, "a failed task is a terminal outcome, not a dispatch error")

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "no sources found", result.FailureDetail)
	assert.Empty(t, result.Content)
}

func TestRunTimesOutWhilePending(t *testing.T) {
	cfg := defaultCfg()
	cfg.MaxWait = 20 * time.Second

	// Enough pending responses to outlast the deadline: 2s per poll means
	// the deadline passes after 11 polls (elapsed 20s is not > 20s until
	// the next one).
	var polls []step
	for i := 0; i < 16; i++ {
		polls = append(polls, step{status: 202, body: `{"status":"pending"}`})
	}
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls:  polls,
	}
	runner, _ := newTestRunner(disp, cfg)

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err, "timeout is a terminal outcome, not an error")

	assert.Equal(t, OutcomeTimedOut, result.Outcome)
	assert.Greater(t, result.Elapsed, cfg.MaxWait)
	assert.Equal(t, result.Polls, disp.pollCalls)
}

// --- hard errors ---

func TestRunSubmissionRejectedNoPolls(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 500, body: `internal error`},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())

	var remoteErr *tavily.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 500, remoteErr.StatusCode)
	assert.Equal(t, 0, disp.pollCalls, "no polling after a failed submission")
}

func TestRunSubmissionMissingIdentifier(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"note":"accepted"}`},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())

	var protoErr *tavily.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, err.Error(), "no identifier")
	assert.Equal(t, 0, disp.pollCalls)
}

func TestRunSubmissionAcceptsIDField(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"id":"alt-handle"}`},
		polls:  []step{{status: 200, body: `{"status":"completed"}`}},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, result.Outcome)
	assert.Equal(t, []string{"/research/alt-handle"}, disp.pollPaths)
}

func TestRunPollHardErrorStopsLoop(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls: []step{
			{status: 202, body: ``},
			{status: 503, body: `unavailable`},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())

	var remoteErr *tavily.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 2, disp.pollCalls, "polling stops at the first hard error")
}

func TestRunPollTransportErrorStopsLoop(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls: []step{
			{err: &tavily.TransportError{Err: context.DeadlineExceeded}},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())

	var transportErr *tavily.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestRunInvalidRequestMakesNoCalls(t *testing.T) {
	disp := &fakeDispatcher{}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), Request{Model: "auto", CitationFormat: "numbered"})

	var cfgErr *tavily.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 0, disp.submitCalls)
	assert.Equal(t, 0, disp.pollCalls)
}

// --- polling schedule ---

func TestPollIntervalWidensOnce(t *testing.T) {
	// 20 pending polls at 2s cross the 30s threshold mid-run.
	var polls []step
	for i := 0; i < 20; i++ {
		polls = append(polls, step{status: 202, body: ``})
	}
	polls = append(polls, step{status: 200, body: `{"status":"completed"}`})

	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls:  polls,
	}
	runner, clock := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err)

	// The interval never narrows over the run.
	for i := 1; i < len(clock.sleeps); i++ {
		assert.GreaterOrEqual(t, clock.sleeps[i], clock.sleeps[i-1],
			"sleep %d narrowed from %v to %v", i, clock.sleeps[i-1], clock.sleeps[i])
	}
	assert.Equal(t, 2*time.Second, clock.sleeps[0])
	assert.Equal(t, 5*time.Second, clock.sleeps[len(clock.sleeps)-1])
}

func Test202BodyContradictionStaysPending(t *testing.T) {
	// A 202 is authoritative "still pending" even when the body claims
	// the task completed.
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls: []step{
			{status: 202, body: `{"status":"completed","content":"premature"}`},
			{status: 200, body: `{"status":"completed","content":"real"}`},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	result, err := runner.Run(context.Background(), validReq())
	require.NoError(t, err)

	assert.Equal(t, "real", result.Content)
	assert.Equal(t, 2, disp.pollCalls)
}

func TestRunCancelledContext(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls: []step{
			{status: 202, body: ``},
		},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, validReq())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, disp.pollCalls, "cancellation is checked on the poll cadence")
}

func TestUnknownStatusIsProtocolError(t *testing.T) {
	disp := &fakeDispatcher{
		submit: step{status: 200, body: `{"request_id":"r1"}`},
		polls:  []step{{status: 200, body: `{"status":"paused"}`}},
	}
	runner, _ := newTestRunner(disp, defaultCfg())

	_, err := runner.Run(context.Background(), validReq())

	var protoErr *tavily.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, err.Error(), "paused")
}
