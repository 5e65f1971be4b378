package service

import (
	"context"

	"github.com/alexanderramin/incubator/internal/contract"
)

// CoachService is the façade the HTTP API and the CLI drive.
type CoachService interface {
	// StartSession creates a fresh BMC session, replacing any existing one.
	StartSession(ctx context.Context, studentID string) (*contract.SessionView, error)

	// NextBMCQuestion asks the question for the current section without
	// advancing. Fails with session.ErrSessionNotFound before StartSession.
	NextBMCQuestion(ctx context.Context, studentID string) (*contract.BMCQuestion, error)

	// Answer records the student's answer and advances to the next section.
	Answer(ctx context.Context, studentID, answer string) (*contract.BMCProgress, error)

	// Advance moves to the next section.
	Advance(ctx context.Context, studentID string) (*contract.BMCProgress, error)

	// Chat answers a design question, creating a design session if needed.
	Chat(ctx context.Context, studentID, message string) (*contract.ChatReply, error)

	Transcript(ctx context.Context, studentID string) (*contract.SessionView, error)
	EndSession(ctx context.Context, studentID string) error
}
