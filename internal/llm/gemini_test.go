package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "user prompt", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "system prompt", req.SystemInstruction.Parts[0].Text)
		assert.Equal(t, 1024, req.GenerationConfig.MaxOutputTokens)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"اختر "},{"text":"ألواناً هادئة"}]}}],"modelVersion":"gemini-1.5-flash-002"}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(geminiTestConfig(srv.URL))
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskDesignAdvice,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "اختر ألواناً هادئة", resp.Text)
	assert.Equal(t, "gemini-1.5-flash-002", resp.Model)
}

func TestGeminiClient_Generate_NoSystemInstruction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.SystemInstruction)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	resp, err := NewGeminiClient(geminiTestConfig(srv.URL)).Generate(context.Background(), GenerateRequest{
		Task:       TaskBMCQuestion,
		UserPrompt: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", resp.Model)
}

func TestGeminiClient_Generate_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(geminiTestConfig(srv.URL)).Generate(context.Background(), GenerateRequest{
		Task:       TaskBMCQuestion,
		UserPrompt: "hi",
	})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(geminiTestConfig(srv.URL)).Generate(context.Background(), GenerateRequest{
		Task:       TaskBMCQuestion,
		UserPrompt: "hi",
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash", r.URL.Path)
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewGeminiClient(geminiTestConfig(srv.URL)).Available(context.Background()))

	cfg := geminiTestConfig(srv.URL)
	cfg.APIKey = "wrong"
	assert.False(t, NewGeminiClient(cfg).Available(context.Background()))
}

func TestNewClient_Factory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	_, err := NewClient(cfg)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	cfg.APIKey = "k"
	c, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Name())

	cfg.Provider = ProviderAnthropic
	c, err = NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())

	cfg.Provider = ProviderOllama
	cfg.APIKey = ""
	c, err = NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ollama", c.Name())

	cfg.Provider = ProviderNone
	_, err = NewClient(cfg)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	cfg.Provider = Provider("bogus")
	_, err = NewClient(cfg)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
