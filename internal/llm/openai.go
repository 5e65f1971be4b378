package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// openAIClient implements LLMClient on top of langchaingo's OpenAI model.
type openAIClient struct {
	cfg   LLMConfig
	model llms.Model
}

// NewOpenAIClient creates an LLMClient for OpenAI-compatible endpoints.
func NewOpenAIClient(cfg LLMConfig) (LLMClient, error) {
	opts := []openai.Option{openai.WithModel(cfg.Model)}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai model: %w", err)
	}
	return &openAIClient{cfg: cfg, model: model}, nil
}

func (c *openAIClient) Name() string { return string(ProviderOpenAI) }

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.Generation(req)

	var messages []llms.MessageContent
	if req.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, req.SystemPrompt))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, req.UserPrompt))

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(temp),
		llms.WithMaxTokens(maxTok),
	)
	if err != nil {
		return nil, classifyOpenAIError(ctx, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResponse{
		Text:      strings.TrimSpace(resp.Choices[0].Content),
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Available reports whether a key is configured; the API has no cheap probe.
func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != "" || c.cfg.Endpoint != ""
}

// classifyOpenAIError maps langchaingo errors, which only carry the status in
// their message, onto the error taxonomy.
func classifyOpenAIError(ctx context.Context, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return transportError(ctx, err)
}
