package llm

import (
	"context"
	"errors"
	"log/slog"
)

// LLMCallEvent records metadata about one completion, including all retries.
type LLMCallEvent struct {
	Task      TaskType
	Backend   string
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "llm_call",
		"task", string(event.Task),
		"backend", event.Backend,
		"model", event.Model,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
		"error_code", event.ErrorCode,
	)
}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// Error codes recorded on LLMCallEvent.
const (
	CodeRateLimited = "RATE_LIMITED"
	CodeUnavailable = "UNAVAILABLE"
	CodeTimeout     = "TIMEOUT"
	CodeUpstream    = "UPSTREAM"
	CodeEmpty       = "EMPTY_RESPONSE"
	CodeFailed      = "FAILED"
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrModelUnavailable), errors.Is(err, ErrUnreachable):
		return CodeUnavailable
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, ErrEmptyResponse):
		return CodeEmpty
	case errors.Is(err, ErrUpstream):
		return CodeUpstream
	default:
		return CodeFailed
	}
}
