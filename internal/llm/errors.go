package llm

import "errors"

var (
	// ErrModelUnavailable indicates no generation backend is configured.
	ErrModelUnavailable = errors.New("llm model unavailable")

	// ErrRateLimited indicates the backend rejected the call for rate limiting
	// (HTTP 429 or equivalent). It is the only retryable error.
	ErrRateLimited = errors.New("llm rate limited")

	// ErrGenerationFailed indicates the call failed terminally, either after
	// exhausting retries or on a non-retryable upstream error.
	ErrGenerationFailed = errors.New("llm generation failed")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnreachable indicates the backend could not be contacted.
	ErrUnreachable = errors.New("llm backend unreachable")

	// ErrUpstream indicates the backend answered with a non-success status
	// other than rate limiting.
	ErrUpstream = errors.New("llm upstream error")

	// ErrEmptyResponse indicates the backend returned no text.
	ErrEmptyResponse = errors.New("llm returned empty response")
)
