package testutil

import (
	"time"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/google/uuid"
)

// CallOption customizes a test LLMCall.
type CallOption func(*domain.LLMCall)

func WithTask(task string) CallOption {
	return func(c *domain.LLMCall) { c.Task = task }
}

func WithFailure(code string) CallOption {
	return func(c *domain.LLMCall) {
		c.Success = false
		c.ErrorCode = code
	}
}

func WithLatency(ms int64) CallOption {
	return func(c *domain.LLMCall) { c.LatencyMs = ms }
}

func WithCreatedAt(t time.Time) CallOption {
	return func(c *domain.LLMCall) { c.CreatedAt = t }
}

// NewTestCall returns a successful single-attempt BMC question call.
func NewTestCall(opts ...CallOption) *domain.LLMCall {
	c := &domain.LLMCall{
		ID:        uuid.New().String(),
		Task:      "bmc_question",
		Backend:   "gemini",
		Model:     "gemini-1.5-flash",
		Attempts:  1,
		LatencyMs: 100,
		Success:   true,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
