package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/incubator/internal/domain"
)

// CallLogRepo stores model call telemetry.
type CallLogRepo interface {
	Record(ctx context.Context, c *domain.LLMCall) error
	ListRecent(ctx context.Context, limit int) ([]*domain.LLMCall, error)
	Summary(ctx context.Context) (*domain.CallSummary, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}
