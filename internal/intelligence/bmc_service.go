package intelligence

import (
	"context"
	"strings"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/llm"
)

// BMCService asks the guiding question for a session's current canvas section.
type BMCService interface {
	// NextQuestion records and returns the question for the current section.
	// It never advances progress.
	NextQuestion(ctx context.Context, sessionID string) (*BMCQuestion, error)
}

// BMCQuestion is one generated or fallback canvas question.
type BMCQuestion struct {
	Text     string
	Section  domain.Section
	Progress int
	Fallback bool
}

type bmcService struct {
	store SessionStore
	gen   Generator
}

// NewBMCService creates a BMCService.
func NewBMCService(store SessionStore, gen Generator) BMCService {
	return &bmcService{store: store, gen: gen}
}

func (s *bmcService) NextQuestion(ctx context.Context, sessionID string) (*BMCQuestion, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	section := sess.CurrentSection()
	q := &BMCQuestion{Section: section, Progress: sess.Progress}

	text, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBMCQuestion,
		SystemPrompt: bmcSystemPrompt,
		UserPrompt:   BuildBMCPrompt(section, recentTurns(sess)),
	})
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		text = BMCFallbackQuestion(section.Key)
		q.Fallback = true
	}
	q.Text = text

	if err := s.store.AppendTurn(sessionID, domain.RoleAssistant, text); err != nil {
		return nil, err
	}
	return q, nil
}
