package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/incubator/internal/session"
)

// Config holds server and session settings. Model settings live in llm.LoadConfig.
type Config struct {
	Port     int
	LogLevel string
	DBPath   string
	APIKey   string
	// Session lifecycle
	SessionTTL    time.Duration
	SweepInterval time.Duration
	// Telemetry retention; zero keeps every call.
	CallRetention time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          envInt("PORT", 8080),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		DBPath:        envStr("INCUBATOR_DB", defaultDBPath()),
		APIKey:        envStr("API_KEY", ""),
		SessionTTL:    envDuration("SESSION_TTL", session.DefaultTTL),
		SweepInterval: envDuration("SWEEP_INTERVAL", session.DefaultSweepInterval),
		CallRetention: envDuration("CALL_RETENTION", 30*24*time.Hour),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("INCUBATOR_DB must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.CallRetention < 0 {
		return fmt.Errorf("CALL_RETENTION must not be negative, got %s", c.CallRetention)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level; validate has already checked it.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps debug/info/warn/error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".incubator", "incubator.db")
	}
	return filepath.Join(home, ".incubator", "incubator.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// envDuration accepts Go durations ("90m") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
