package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
)

// Use case names reported to observers.
const (
	UseCaseStartSession = "start-session"
	UseCaseNextQuestion = "bmc-next-question"
	UseCaseAnswer       = "bmc-answer"
	UseCaseAdvance      = "bmc-advance"
	UseCaseChat         = "chat"
	UseCaseTranscript   = "transcript"
	UseCaseEndSession   = "end-session"
)

// UseCaseEvent describes one coach call. Section and Progress are set by the
// canvas use cases, Topic by chat. Fallback reports that the deterministic
// text was served instead of a model reply.
type UseCaseEvent struct {
	Name      string
	StudentID string
	Section   domain.SectionKey
	Progress  int
	Topic     string
	Fallback  bool
	Duration  time.Duration
	Success   bool
	Err       error
	StartedAt time.Time
}

func (e *UseCaseEvent) recordProgress(p *contract.BMCProgress) {
	e.Section = p.Section.Key
	e.Progress = p.Progress
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes coach events to logger, one line per call.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []any{
		"use_case", event.Name,
		"student_id", event.StudentID,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	if event.Section != "" {
		attrs = append(attrs, "section", string(event.Section), "progress", event.Progress)
	}
	if event.Topic != "" {
		attrs = append(attrs, "topic", event.Topic)
	}
	if event.Fallback {
		attrs = append(attrs, "fallback", true)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.WarnContext(ctx, "coach_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "coach_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
