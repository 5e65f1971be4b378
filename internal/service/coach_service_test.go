package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/intelligence"
	"github.com/alexanderramin/incubator/internal/llm"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a fixed response.
type stubGenerator struct {
	response string
}

func (g stubGenerator) Generate(context.Context, llm.GenerateRequest) (string, error) {
	return g.response, nil
}

type recordingUseCaseObserver struct {
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

// modelDown is a completion client with no backend configured.
func modelDown() *llm.CompletionClient {
	return llm.NewCompletionClient(nil, llm.DefaultConfig(), llm.NoopObserver{})
}

func TestCoach_ScenarioFallbackWalk(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	svc := NewCoachService(store, modelDown())

	_, err := svc.StartSession(ctx, "S1")
	require.NoError(t, err)

	q, err := svc.NextBMCQuestion(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, intelligence.BMCFallbackQuestion(domain.SectionKeyPartners), q.Question)
	assert.Equal(t, 0, q.Progress)
	assert.Equal(t, 9, q.TotalSections)
	assert.True(t, q.Fallback)

	view, err := svc.Transcript(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, view.Transcript, 1)

	p, err := svc.Advance(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Progress)
	assert.Equal(t, domain.SectionKeyActivities, p.Section.Key)

	q, err = svc.NextBMCQuestion(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, intelligence.BMCFallbackQuestion(domain.SectionKeyActivities), q.Question)
}

func TestCoach_NextQuestionFallbackForEverySection(t *testing.T) {
	ctx := context.Background()
	for k := 0; k < 2*domain.SectionCount; k++ {
		store := session.NewStore()
		svc := NewCoachService(store, modelDown())
		_, err := svc.StartSession(ctx, "s")
		require.NoError(t, err)
		for i := 0; i < k; i++ {
			_, err := svc.Advance(ctx, "s")
			require.NoError(t, err)
		}

		q, err := svc.NextBMCQuestion(ctx, "s")
		require.NoError(t, err)

		want := domain.SectionAt(k)
		assert.Equal(t, want, q.Section, "k=%d", k)
		assert.Equal(t, intelligence.BMCFallbackQuestion(want.Key), q.Question)

		view, err := svc.Transcript(ctx, "s")
		require.NoError(t, err)
		last := view.Transcript[len(view.Transcript)-1]
		assert.Equal(t, domain.RoleAssistant, last.Role)
		assert.Equal(t, q.Question, last.Content)
	}
}

func TestCoach_NextQuestionRequiresSession(t *testing.T) {
	svc := NewCoachService(session.NewStore(), modelDown())

	_, err := svc.NextBMCQuestion(context.Background(), "nobody")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	_, err = svc.Advance(context.Background(), "nobody")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	_, err = svc.Transcript(context.Background(), "nobody")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	assert.ErrorIs(t, svc.EndSession(context.Background(), "nobody"), session.ErrSessionNotFound)
}

func TestCoach_AnswerRecordsAndAdvances(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	svc := NewCoachService(store, stubGenerator{response: "من شركاؤك؟"})
	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)

	_, err = svc.NextBMCQuestion(ctx, "s")
	require.NoError(t, err)
	p, err := svc.Answer(ctx, "s", "الموردون المحليون")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Progress)

	view, err := svc.Transcript(ctx, "s")
	require.NoError(t, err)
	require.Len(t, view.Transcript, 2)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Content: "الموردون المحليون"}, view.Transcript[1])

	_, err = svc.Answer(ctx, "s", " ")
	var reqErr *contract.RequestError
	assert.True(t, errors.As(err, &reqErr))
}

func TestCoach_AdvanceReportsCompletion(t *testing.T) {
	ctx := context.Background()
	svc := NewCoachService(session.NewStore(), modelDown())
	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)

	var p *contract.BMCProgress
	for i := 0; i < domain.SectionCount; i++ {
		p, err = svc.Advance(ctx, "s")
		require.NoError(t, err)
	}
	assert.True(t, p.Completed)
	assert.Equal(t, domain.SectionKeyPartners, p.Section.Key)
}

func TestCoach_ChatAutoCreatesDesignSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	svc := NewCoachService(store, modelDown())

	reply, err := svc.Chat(ctx, "brand-new", "أحتاج تصميم شعار لمشروعي")

	require.NoError(t, err)
	assert.Equal(t, domain.ModeDesign, reply.Mode)
	assert.Equal(t, string(intelligence.TopicLogo), reply.Topic)
	assert.True(t, reply.Fallback)
	assert.Equal(t, intelligence.DeterministicDesignAnswer(intelligence.TopicLogo), reply.Response)

	view, err := svc.Transcript(ctx, "brand-new")
	require.NoError(t, err)
	assert.Len(t, view.Transcript, 2)
}

func TestCoach_ChatKeepsBMCMode(t *testing.T) {
	ctx := context.Background()
	svc := NewCoachService(session.NewStore(), stubGenerator{response: "نصيحة"})
	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)

	reply, err := svc.Chat(ctx, "s", "كيف أصمم موقع؟")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBMC, reply.Mode)
	assert.Equal(t, "نصيحة", reply.Response)
	assert.False(t, reply.Fallback)
}

func TestCoach_ValidationErrors(t *testing.T) {
	svc := NewCoachService(session.NewStore(), modelDown())

	_, err := svc.StartSession(context.Background(), "")
	var reqErr *contract.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, contract.ErrMissingStudentID, reqErr.Code)

	_, err = svc.Chat(context.Background(), "s", "")
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, contract.ErrEmptyMessage, reqErr.Code)
}

func TestCoach_StartSessionResets(t *testing.T) {
	ctx := context.Background()
	svc := NewCoachService(session.NewStore(), modelDown())
	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)
	_, err = svc.NextBMCQuestion(ctx, "s")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, "s")
	require.NoError(t, err)

	view, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Progress)
	assert.Empty(t, view.Transcript)
	assert.Equal(t, domain.ModeBMC, view.Mode)
}

func TestCoach_EndSession(t *testing.T) {
	ctx := context.Background()
	svc := NewCoachService(session.NewStore(), modelDown())
	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, "s"))
	_, err = svc.Transcript(ctx, "s")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestCoach_ObservesUseCases(t *testing.T) {
	ctx := context.Background()
	obs := &recordingUseCaseObserver{}
	svc := NewCoachService(session.NewStore(), modelDown(), obs)

	_, _ = svc.StartSession(ctx, "s")
	_, _ = svc.NextBMCQuestion(ctx, "s")
	_, _ = svc.NextBMCQuestion(ctx, "missing")

	require.Len(t, obs.events, 3)
	assert.Equal(t, "start-session", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "bmc-next-question", obs.events[1].Name)
	assert.Equal(t, "s", obs.events[1].StudentID)
	assert.True(t, obs.events[1].Fallback)
	assert.Equal(t, domain.SectionKeyPartners, obs.events[1].Section)
	assert.False(t, obs.events[2].Success)
	assert.ErrorIs(t, obs.events[2].Err, session.ErrSessionNotFound)
}

func TestCoach_ObservesCanvasPositionAndTopic(t *testing.T) {
	ctx := context.Background()
	obs := &recordingUseCaseObserver{}
	svc := NewCoachService(session.NewStore(), modelDown(), obs)

	_, err := svc.StartSession(ctx, "s")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, "s", "ورش الخياطة")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, "s")
	require.NoError(t, err)
	_, err = svc.Chat(ctx, "s", "أحتاج شعار")
	require.NoError(t, err)

	require.Len(t, obs.events, 4)
	answer, advance, chat := obs.events[1], obs.events[2], obs.events[3]

	assert.Equal(t, UseCaseAnswer, answer.Name)
	assert.Equal(t, 1, answer.Progress)
	assert.Equal(t, domain.SectionKeyActivities, answer.Section)

	assert.Equal(t, UseCaseAdvance, advance.Name)
	assert.Equal(t, 2, advance.Progress)
	assert.Equal(t, domain.SectionValuePropositions, advance.Section)

	assert.Equal(t, UseCaseChat, chat.Name)
	assert.Equal(t, string(intelligence.TopicLogo), chat.Topic)
	assert.True(t, chat.Fallback)
	assert.Empty(t, chat.Section)
}
