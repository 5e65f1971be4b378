package llm

import "fmt"

// NewClient builds the backend selected by cfg.Provider. It returns an error
// wrapping ErrModelUnavailable when no usable backend is configured; callers
// then hand a nil client to NewCompletionClient so every call falls back.
func NewClient(cfg LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: gemini api key not set", ErrModelUnavailable)
		}
		return NewGeminiClient(cfg), nil
	case ProviderOllama:
		return NewOllamaClient(cfg), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" && cfg.Endpoint == "" {
			return nil, fmt.Errorf("%w: openai api key not set", ErrModelUnavailable)
		}
		return NewOpenAIClient(cfg)
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: anthropic api key not set", ErrModelUnavailable)
		}
		return NewAnthropicClient(cfg), nil
	case ProviderNone, "":
		return nil, fmt.Errorf("%w: no provider configured", ErrModelUnavailable)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrModelUnavailable, cfg.Provider)
	}
}
