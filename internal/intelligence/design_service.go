package intelligence

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/llm"
	"github.com/alexanderramin/incubator/internal/session"
)

// DesignService answers free-form design questions. It never fails for an
// unknown session: one is created in design mode.
type DesignService interface {
	// Respond records the message and returns the answer text.
	Respond(ctx context.Context, sessionID, message string) (string, error)

	// Reply is Respond with the classified topic and fallback flag.
	Reply(ctx context.Context, sessionID, message string) (*DesignReply, error)
}

type designService struct {
	store SessionStore
	gen   Generator
}

// NewDesignService creates a DesignService.
func NewDesignService(store SessionStore, gen Generator) DesignService {
	return &designService{store: store, gen: gen}
}

func (s *designService) Respond(ctx context.Context, sessionID, message string) (string, error) {
	reply, err := s.Reply(ctx, sessionID, message)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

func (s *designService) Reply(ctx context.Context, sessionID, message string) (*DesignReply, error) {
	s.store.GetOrCreate(sessionID, domain.ModeDesign)
	if err := s.appendTurn(sessionID, domain.RoleUser, message); err != nil {
		return nil, err
	}

	var recent []domain.Turn
	if sess, err := s.store.Get(sessionID); err == nil {
		recent = recentTurns(sess)
	}

	topic := ClassifyTopic(message)
	reply := &DesignReply{Topic: topic}

	text, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDesignAdvice,
		SystemPrompt: designSystemPrompt,
		UserPrompt:   BuildDesignPrompt(topic, message, recent),
	})
	if err != nil || strings.TrimSpace(text) == "" {
		text = DeterministicDesignAnswer(topic)
		reply.Fallback = true
	}
	reply.Text = text

	if err := s.appendTurn(sessionID, domain.RoleAssistant, text); err != nil {
		return nil, err
	}
	return reply, nil
}

// appendTurn re-creates the session when it expired between two calls.
func (s *designService) appendTurn(id string, role domain.Role, content string) error {
	err := s.store.AppendTurn(id, role, content)
	if errors.Is(err, session.ErrSessionNotFound) {
		s.store.GetOrCreate(id, domain.ModeDesign)
		err = s.store.AppendTurn(id, role, content)
	}
	return err
}
