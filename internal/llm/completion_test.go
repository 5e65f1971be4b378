package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns the queued results in order, repeating the last one.
type scriptedClient struct {
	mu      sync.Mutex
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	text string
	err  error
}

func (c *scriptedClient) Generate(_ context.Context, _ GenerateRequest) (*GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.calls
	if idx >= len(c.results) {
		idx = len(c.results) - 1
	}
	c.calls++
	r := c.results[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &GenerateResponse{Text: r.text, Model: "scripted"}, nil
}

func (c *scriptedClient) Available(context.Context) bool { return true }
func (c *scriptedClient) Name() string                   { return "scripted" }

// fakeTimer records requested delays and fires immediately.
type fakeTimer struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (t *fakeTimer) After(d time.Duration) <-chan time.Time {
	t.mu.Lock()
	t.delays = append(t.delays, d)
	t.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

type recordingObserver struct {
	events []LLMCallEvent
}

func (o *recordingObserver) OnCallComplete(e LLMCallEvent) { o.events = append(o.events, e) }

func TestCompletionClient_SuccessFirstAttempt(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{text: "سؤال"}}}
	timer := &fakeTimer{}
	obs := &recordingObserver{}

	cc := NewCompletionClient(client, DefaultConfig(), obs, WithTimer(timer))
	text, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "سؤال", text)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, timer.delays)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Attempts)
	assert.Equal(t, "scripted", obs.events[0].Backend)
	assert.Equal(t, TaskBMCQuestion, obs.events[0].Task)
}

func TestCompletionClient_RateLimitedExhaustsWithLinearBackoff(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{err: ErrRateLimited}}}
	timer := &fakeTimer{}
	obs := &recordingObserver{}

	cc := NewCompletionClient(client, DefaultConfig(), obs, WithTimer(timer))
	text, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, client.calls)
	// No sleep after the final attempt.
	assert.Equal(t, []time.Duration{2000 * time.Millisecond, 4000 * time.Millisecond}, timer.delays)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, 3, obs.events[0].Attempts)
	assert.Equal(t, CodeRateLimited, obs.events[0].ErrorCode)
}

func TestCompletionClient_RateLimitedThenSuccess(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{
		{err: ErrRateLimited},
		{text: "ok"},
	}}
	timer := &fakeTimer{}

	cc := NewCompletionClient(client, DefaultConfig(), nil, WithTimer(timer))
	text, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskDesignAdvice, UserPrompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, []time.Duration{2000 * time.Millisecond}, timer.delays)
}

func TestCompletionClient_NonRetryableStopsImmediately(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{err: ErrUpstream}}}
	timer := &fakeTimer{}
	obs := &recordingObserver{}

	cc := NewCompletionClient(client, DefaultConfig(), obs, WithTimer(timer))
	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, timer.delays)
	require.Len(t, obs.events, 1)
	assert.Equal(t, CodeUpstream, obs.events[0].ErrorCode)
}

func TestCompletionClient_NilClientUnavailable(t *testing.T) {
	obs := &recordingObserver{}
	cc := NewCompletionClient(nil, DefaultConfig(), obs)

	assert.False(t, cc.Configured())
	assert.False(t, cc.Available(context.Background()))
	assert.Equal(t, "none", cc.Backend())

	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	require.Len(t, obs.events, 1)
	assert.Equal(t, 0, obs.events[0].Attempts)
	assert.Equal(t, CodeUnavailable, obs.events[0].ErrorCode)
}

func TestCompletionClient_MaxRetriesOverride(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{err: ErrRateLimited}}}
	timer := &fakeTimer{}

	cc := NewCompletionClient(client, DefaultConfig(), nil, WithTimer(timer), WithMaxRetries(5))
	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 5, client.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second}, timer.delays)
}

func TestCompletionClient_ZeroMaxRetriesStillAttemptsOnce(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{err: ErrRateLimited}}}
	cc := NewCompletionClient(client, DefaultConfig(), nil, WithTimer(&fakeTimer{}), WithMaxRetries(0))

	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestCompletionClient_PhaseTransitions(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{
		{err: ErrRateLimited},
		{text: "ok"},
	}}
	var phases []Phase
	hook := func(p Phase, _ int) { phases = append(phases, p) }

	cc := NewCompletionClient(client, DefaultConfig(), nil, WithTimer(&fakeTimer{}), WithPhaseHook(hook))
	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, []Phase{PhaseAttempting, PhaseBackingOff, PhaseAttempting, PhaseSucceeded}, phases)
}

func TestCompletionClient_PhaseExhausted(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{err: ErrTimeout}}}
	var phases []Phase
	hook := func(p Phase, _ int) { phases = append(phases, p) }

	cc := NewCompletionClient(client, DefaultConfig(), nil, WithTimer(&fakeTimer{}), WithPhaseHook(hook))
	_, err := cc.Generate(context.Background(), GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, []Phase{PhaseAttempting, PhaseExhausted}, phases)
}

func TestCompletionClient_CancelledContext(t *testing.T) {
	client := &scriptedClient{results: []scriptedResult{{text: "ok"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cc := NewCompletionClient(client, DefaultConfig(), nil)
	_, err := cc.Generate(ctx, GenerateRequest{Task: TaskBMCQuestion, UserPrompt: "p"})

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, client.calls)
}
