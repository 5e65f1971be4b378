package session

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTTL           = 2 * time.Hour
	DefaultSweepInterval = 30 * time.Minute
)

// Sweeper periodically evicts expired sessions from a Store.
type Sweeper struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper. Non-positive durations fall back to the defaults.
func NewSweeper(store *Store, ttl, interval time.Duration, logger *slog.Logger) *Sweeper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{store: store, ttl: ttl, interval: interval, logger: logger}
}

// Run sweeps on every tick until ctx is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.SweepOnce()
		}
	}
}

// SweepOnce runs a single expiry pass and returns the eviction count.
func (w *Sweeper) SweepOnce() int {
	removed := w.store.SweepExpired(w.ttl)
	if removed > 0 {
		w.logger.Info("expired sessions swept",
			"removed", removed,
			"remaining", w.store.Len(),
			"ttl", w.ttl.String(),
		)
	}
	return removed
}
