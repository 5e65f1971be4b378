package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/llm"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMCService_NextQuestion_UsesModelText(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")
	gen := &fakeGenerator{response: "  من هم شركاؤك الأساسيون؟ \n"}

	svc := NewBMCService(store, gen)
	q, err := svc.NextQuestion(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "من هم شركاؤك الأساسيون؟", q.Text)
	assert.False(t, q.Fallback)
	assert.Equal(t, domain.SectionKeyPartners, q.Section.Key)

	req := gen.lastRequest()
	assert.Equal(t, llm.TaskBMCQuestion, req.Task)
	assert.Contains(t, req.UserPrompt, "الشركاء الرئيسيون")

	sess, err := store.Get("s1")
	require.NoError(t, err)
	require.Len(t, sess.Transcript, 1)
	assert.Equal(t, domain.RoleAssistant, sess.Transcript[0].Role)
	assert.Equal(t, "من هم شركاؤك الأساسيون؟", sess.Transcript[0].Content)
}

func TestBMCService_NextQuestion_FallbackOnFailure(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")

	svc := NewBMCService(store, failingGenerator())
	q, err := svc.NextQuestion(context.Background(), "s1")

	require.NoError(t, err)
	assert.True(t, q.Fallback)
	assert.Equal(t, BMCFallbackQuestion(domain.SectionKeyPartners), q.Text)

	sess, _ := store.Get("s1")
	require.Len(t, sess.Transcript, 1)
	assert.Equal(t, q.Text, sess.Transcript[0].Content)
}

func TestBMCService_NextQuestion_FallbackOnEmptyText(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")

	q, err := NewBMCService(store, &fakeGenerator{response: "   "}).NextQuestion(context.Background(), "s1")

	require.NoError(t, err)
	assert.True(t, q.Fallback)
}

func TestBMCService_NextQuestion_DoesNotAdvance(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")
	svc := NewBMCService(store, failingGenerator())

	first, err := svc.NextQuestion(context.Background(), "s1")
	require.NoError(t, err)
	second, err := svc.NextQuestion(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, first.Section, second.Section)
	assert.Equal(t, first.Text, second.Text)

	sess, _ := store.Get("s1")
	assert.Equal(t, 0, sess.Progress)
	assert.Len(t, sess.Transcript, 2)
}

func TestBMCService_NextQuestion_FollowsProgress(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")
	for i := 0; i < 11; i++ {
		_, err := store.Advance("s1")
		require.NoError(t, err)
	}

	q, err := NewBMCService(store, failingGenerator()).NextQuestion(context.Background(), "s1")

	require.NoError(t, err)
	// 11 mod 9 = 2
	assert.Equal(t, domain.SectionValuePropositions, q.Section.Key)
	assert.Equal(t, 11, q.Progress)
}

func TestBMCService_NextQuestion_UnknownSession(t *testing.T) {
	gen := &fakeGenerator{response: "x"}
	_, err := NewBMCService(session.NewStore(), gen).NextQuestion(context.Background(), "missing")

	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Empty(t, gen.requests)
}

func TestBMCService_NextQuestion_IncludesRecentTurns(t *testing.T) {
	store := session.NewStore()
	store.Create("s1")
	require.NoError(t, store.AppendTurn("s1", domain.RoleUser, "مشروعي متجر قهوة متنقل"))
	gen := &fakeGenerator{response: "سؤال"}

	_, err := NewBMCService(store, gen).NextQuestion(context.Background(), "s1")
	require.NoError(t, err)

	assert.Contains(t, gen.lastRequest().UserPrompt, "مشروعي متجر قهوة متنقل")
}

func TestBMCFallbackQuestion_AllSectionsCovered(t *testing.T) {
	for _, sec := range domain.Sections() {
		q := BMCFallbackQuestion(sec.Key)
		assert.NotEqual(t, GenericFallbackQuestion, q, sec.Key)
		assert.NotEmpty(t, q)
	}
	assert.Equal(t, GenericFallbackQuestion, BMCFallbackQuestion(domain.SectionKey("unknown")))
}

func TestBuildBMCPrompt_LimitsContext(t *testing.T) {
	sess := &domain.Session{}
	for i := 0; i < 10; i++ {
		sess.Transcript = append(sess.Transcript, domain.Turn{Role: domain.RoleUser, Content: string(rune('a' + i))})
	}

	recent := recentTurns(sess)
	require.Len(t, recent, recentTurnLimit)
	prompt := BuildBMCPrompt(domain.SectionAt(0), recent)

	assert.NotContains(t, prompt, ": a\n")
	assert.Contains(t, prompt, ": j\n")
}
