package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements LLMClient with the Anthropic Messages API.
type anthropicClient struct {
	cfg    LLMConfig
	client anthropic.Client
}

// NewAnthropicClient creates an LLMClient backed by the Anthropic SDK. The
// SDK's own retries are disabled so CompletionClient owns the retry policy.
func NewAnthropicClient(cfg LLMConfig) LLMClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &anthropicClient{cfg: cfg, client: anthropic.NewClient(opts...)}
}

func (c *anthropicClient) Name() string { return string(ProviderAnthropic) }

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.Generation(req)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(maxTok),
		Temperature: anthropic.Float(temp),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicError(ctx, err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResponse{
		Text:      out,
		Model:     string(resp.Model),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Available reports whether a key is configured.
func (c *anthropicClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

func classifyAnthropicError(ctx context.Context, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return transportError(ctx, err)
}
