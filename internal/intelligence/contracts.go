package intelligence

import (
	"context"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/llm"
)

// Generator produces text for a prompt. llm.CompletionClient satisfies it;
// any error means the caller should use deterministic content instead.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (string, error)
}

// SessionStore is the subset of the session store the assistants need.
type SessionStore interface {
	Get(id string) (*domain.Session, error)
	GetOrCreate(id string, mode domain.Mode) (*domain.Session, bool)
	AppendTurn(id string, role domain.Role, content string) error
}

// Topic is the design subject a free-form message was classified under.
type Topic string

const (
	TopicLogo         Topic = "logo design"
	TopicWebsite      Topic = "website design"
	TopicIdentity     Topic = "visual identity"
	TopicCover        Topic = "cover design"
	TopicSocialMedia  Topic = "social media design"
	TopicPresentation Topic = "presentation design"
	TopicGeneral      Topic = "general"
)

// DesignReply is the assistant answer together with the topic it addressed.
type DesignReply struct {
	Text     string
	Topic    Topic
	Fallback bool
}

// recentTurnLimit bounds how much transcript is replayed into a prompt.
const recentTurnLimit = 6

func recentTurns(sess *domain.Session) []domain.Turn {
	if len(sess.Transcript) <= recentTurnLimit {
		return sess.Transcript
	}
	return sess.Transcript[len(sess.Transcript)-recentTurnLimit:]
}
