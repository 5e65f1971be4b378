package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskBMCQuestion  TaskType = "bmc_question"
	TaskDesignAdvice TaskType = "design_advice"
)

// Provider names a generation backend.
type Provider string

const (
	ProviderNone      Provider = "none"
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider    Provider
	LogCalls    bool
	Endpoint    string
	Model       string
	APIKey      string
	TimeoutMs   int
	MaxRetries  int
	BackoffStep time.Duration
	Tasks       map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// Gemini is the default backend; without an API key it stays unconfigured
// and every call falls back.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderGemini,
		LogCalls:    true,
		Model:       "gemini-1.5-flash",
		TimeoutMs:   30000,
		MaxRetries:  3,
		BackoffStep: 2000 * time.Millisecond,
		Tasks: map[TaskType]TaskConfig{
			TaskBMCQuestion:  {Temperature: 0.7, MaxTokens: 256, TimeoutMs: 20000},
			TaskDesignAdvice: {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("INCUBATOR_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("INCUBATOR_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("INCUBATOR_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("INCUBATOR_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = os.Getenv("INCUBATOR_LLM_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(providerKeyEnv(cfg.Provider))
	}
	if v := os.Getenv("INCUBATOR_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("INCUBATOR_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("INCUBATOR_LLM_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BackoffStep = time.Duration(n) * time.Millisecond
		}
	}

	applyTaskEnv(&cfg, TaskBMCQuestion, "INCUBATOR_LLM_BMC")
	applyTaskEnv(&cfg, TaskDesignAdvice, "INCUBATOR_LLM_DESIGN")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return time.Duration(tc.TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Generation resolves temperature and max tokens for a request, preferring
// explicit request values over task defaults.
func (c LLMConfig) Generation(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	temp, maxTok := tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func providerKeyEnv(p Provider) string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// applyTaskEnv reads <prefix>_TEMPERATURE, <prefix>_MAX_TOKENS and
// <prefix>_TIMEOUT_MS for one task.
func applyTaskEnv(cfg *LLMConfig, task TaskType, prefix string) {
	tc := cfg.Tasks[task]
	if v := os.Getenv(prefix + "_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			tc.Temperature = f
		}
	}
	if v := os.Getenv(prefix + "_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc.MaxTokens = n
		}
	}
	if v := os.Getenv(prefix + "_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc.TimeoutMs = n
		}
	}
	cfg.Tasks[task] = tc
}
