package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
)

// Phase is a state of the completion retry loop.
type Phase string

const (
	PhaseAttempting Phase = "attempting"
	PhaseBackingOff Phase = "backing-off"
	PhaseSucceeded  Phase = "succeeded"
	PhaseExhausted  Phase = "exhausted"
)

// PhaseHook is told about every phase transition with the current attempt.
type PhaseHook func(phase Phase, attempt int)

// Timer is the sleep primitive used between rate-limited attempts.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

type realTimer struct{}

func (realTimer) After(d time.Duration) <-chan time.Time { return time.After(d) }

// CompletionClient wraps a single-attempt LLMClient with the retry policy:
// only ErrRateLimited is retried, after attempt*BackoffStep.
type CompletionClient struct {
	client     LLMClient
	cfg        LLMConfig
	observer   Observer
	timer      Timer
	onPhase    PhaseHook
	maxRetries int
}

// CompletionOption customizes a CompletionClient.
type CompletionOption func(*CompletionClient)

// WithTimer replaces the wall-clock sleep between attempts.
func WithTimer(t Timer) CompletionOption {
	return func(c *CompletionClient) { c.timer = t }
}

// WithMaxRetries overrides cfg.MaxRetries.
func WithMaxRetries(n int) CompletionOption {
	return func(c *CompletionClient) { c.maxRetries = n }
}

// WithPhaseHook registers a callback for retry loop transitions.
func WithPhaseHook(h PhaseHook) CompletionOption {
	return func(c *CompletionClient) { c.onPhase = h }
}

// NewCompletionClient creates a CompletionClient. A nil client is allowed and
// makes every call fail with ErrModelUnavailable.
func NewCompletionClient(client LLMClient, cfg LLMConfig, observer Observer, opts ...CompletionOption) *CompletionClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	c := &CompletionClient{
		client:     client,
		cfg:        cfg,
		observer:   observer,
		timer:      realTimer{},
		maxRetries: cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxRetries < 1 {
		c.maxRetries = 1
	}
	return c
}

// Configured reports whether a backend is wired in.
func (c *CompletionClient) Configured() bool { return c.client != nil }

// Available reports whether the backend is configured and reachable.
func (c *CompletionClient) Available(ctx context.Context) bool {
	return c.client != nil && c.client.Available(ctx)
}

// Backend returns the backend name, or "none".
func (c *CompletionClient) Backend() string {
	if c.client == nil {
		return string(ProviderNone)
	}
	return c.client.Name()
}

// Generate runs req against the backend and returns the generated text.
// Every failure wraps ErrGenerationFailed together with the last observed error.
func (c *CompletionClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	start := time.Now()
	event := LLMCallEvent{Task: req.Task, Backend: c.Backend(), Model: c.cfg.Model}

	if c.client == nil {
		err := fmt.Errorf("%w: %w", ErrGenerationFailed, ErrModelUnavailable)
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return "", err
	}

	attempts := 0
	resp, err := retry.DoWithData(
		func() (*GenerateResponse, error) {
			attempts++
			c.phase(PhaseAttempting, attempts)
			return c.attempt(ctx, req)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrRateLimited) }),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			c.phase(PhaseBackingOff, attempts)
			return time.Duration(attempts) * c.cfg.BackoffStep
		}),
		retry.WithTimer(c.timer),
		retry.LastErrorOnly(true),
	)

	event.Attempts = attempts
	event.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		c.phase(PhaseExhausted, attempts)
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c.phase(PhaseSucceeded, attempts)
	event.Success = true
	if resp.Model != "" {
		event.Model = resp.Model
	}
	c.observer.OnCallComplete(event)
	return resp.Text, nil
}

func (c *CompletionClient) attempt(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	timeout := c.cfg.TaskTimeout(req.Task)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.client.Generate(ctx, req)
}

func (c *CompletionClient) phase(p Phase, attempt int) {
	if c.onPhase != nil {
		c.onPhase(p, attempt)
	}
}
