package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/incubator/internal/llm"
)

// fakeGenerator returns a fixed response or error and records requests.
type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) lastRequest() llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.GenerateRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func failingGenerator() *fakeGenerator {
	return &fakeGenerator{err: llm.ErrGenerationFailed}
}
