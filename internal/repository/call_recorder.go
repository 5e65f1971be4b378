package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/llm"
)

const recordTimeout = 2 * time.Second

// CallRecorder persists llm.LLMCallEvent values. Write failures are logged
// and never reach the caller of the completion.
type CallRecorder struct {
	repo   CallLogRepo
	logger *slog.Logger
	now    func() time.Time
}

var _ llm.Observer = (*CallRecorder)(nil)

// NewCallRecorder creates an llm.Observer backed by repo.
func NewCallRecorder(repo CallLogRepo, logger *slog.Logger) *CallRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CallRecorder{repo: repo, logger: logger, now: time.Now}
}

func (r *CallRecorder) OnCallComplete(event llm.LLMCallEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	call := &domain.LLMCall{
		Task:      string(event.Task),
		Backend:   event.Backend,
		Model:     event.Model,
		Attempts:  event.Attempts,
		LatencyMs: event.LatencyMs,
		Success:   event.Success,
		ErrorCode: event.ErrorCode,
		CreatedAt: r.now().UTC(),
	}
	if err := r.repo.Record(ctx, call); err != nil {
		r.logger.Warn("recording llm call failed", "task", call.Task, "error", err)
	}
}
