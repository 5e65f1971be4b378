package service

import (
	"context"
	"time"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/intelligence"
	"github.com/alexanderramin/incubator/internal/session"
)

type coachService struct {
	store    *session.Store
	bmc      intelligence.BMCService
	design   intelligence.DesignService
	observer UseCaseObserver
}

func NewCoachService(store *session.Store, gen intelligence.Generator, observers ...UseCaseObserver) CoachService {
	return &coachService{
		store:    store,
		bmc:      intelligence.NewBMCService(store, gen),
		design:   intelligence.NewDesignService(store, gen),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *coachService) StartSession(ctx context.Context, studentID string) (view *contract.SessionView, err error) {
	ev := &UseCaseEvent{Name: UseCaseStartSession, StudentID: studentID}
	defer s.observe(ctx, ev, time.Now(), &err)

	if err = contract.ValidateStudentID(studentID); err != nil {
		return nil, err
	}
	view = contract.NewSessionView(s.store.Create(studentID))
	ev.Section = view.Section.Key
	return view, nil
}

func (s *coachService) NextBMCQuestion(ctx context.Context, studentID string) (q *contract.BMCQuestion, err error) {
	ev := &UseCaseEvent{Name: UseCaseNextQuestion, StudentID: studentID}
	defer s.observe(ctx, ev, time.Now(), &err)

	if err = contract.ValidateStudentID(studentID); err != nil {
		return nil, err
	}

	var next *intelligence.BMCQuestion
	next, err = s.bmc.NextQuestion(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ev.Section = next.Section.Key
	ev.Progress = next.Progress
	ev.Fallback = next.Fallback

	return &contract.BMCQuestion{
		Question:      next.Text,
		Progress:      next.Progress,
		TotalSections: domain.SectionCount,
		Section:       next.Section,
		Fallback:      next.Fallback,
	}, nil
}

func (s *coachService) Answer(ctx context.Context, studentID, answer string) (p *contract.BMCProgress, err error) {
	ev := &UseCaseEvent{Name: UseCaseAnswer, StudentID: studentID}
	defer s.observe(ctx, ev, time.Now(), &err)

	if err = contract.ValidateStudentID(studentID); err != nil {
		return nil, err
	}
	if err = contract.ValidateMessage(answer); err != nil {
		return nil, err
	}
	if err = s.store.AppendTurn(studentID, domain.RoleUser, answer); err != nil {
		return nil, err
	}
	if p, err = s.advance(studentID); err != nil {
		return nil, err
	}
	ev.recordProgress(p)
	return p, nil
}

func (s *coachService) Advance(ctx context.Context, studentID string) (p *contract.BMCProgress, err error) {
	ev := &UseCaseEvent{Name: UseCaseAdvance, StudentID: studentID}
	defer s.observe(ctx, ev, time.Now(), &err)

	if err = contract.ValidateStudentID(studentID); err != nil {
		return nil, err
	}
	if p, err = s.advance(studentID); err != nil {
		return nil, err
	}
	ev.recordProgress(p)
	return p, nil
}

func (s *coachService) advance(studentID string) (*contract.BMCProgress, error) {
	progress, err := s.store.Advance(studentID)
	if err != nil {
		return nil, err
	}
	p := contract.NewBMCProgress(progress)
	return &p, nil
}

func (s *coachService) Chat(ctx context.Context, studentID, message string) (reply *contract.ChatReply, err error) {
	ev := &UseCaseEvent{Name: UseCaseChat, StudentID: studentID}
	defer s.observe(ctx, ev, time.Now(), &err)

	if err = contract.ValidateStudentID(studentID); err != nil {
		return nil, err
	}
	if err = contract.ValidateMessage(message); err != nil {
		return nil, err
	}

	var r *intelligence.DesignReply
	r, err = s.design.Reply(ctx, studentID, message)
	if err != nil {
		return nil, err
	}
	ev.Topic = string(r.Topic)
	ev.Fallback = r.Fallback

	mode := domain.ModeDesign
	if sess, getErr := s.store.Get(studentID); getErr == nil {
		mode = sess.Mode
	}

	return &contract.ChatReply{
		Response: r.Text,
		Mode:     mode,
		Topic:    string(r.Topic),
		Fallback: r.Fallback,
	}, nil
}

func (s *coachService) Transcript(ctx context.Context, studentID string) (view *contract.SessionView, err error) {
	defer s.observe(ctx, &UseCaseEvent{Name: UseCaseTranscript, StudentID: studentID}, time.Now(), &err)

	var sess *domain.Session
	sess, err = s.store.Get(studentID)
	if err != nil {
		return nil, err
	}
	return contract.NewSessionView(sess), nil
}

func (s *coachService) EndSession(ctx context.Context, studentID string) (err error) {
	defer s.observe(ctx, &UseCaseEvent{Name: UseCaseEndSession, StudentID: studentID}, time.Now(), &err)

	if !s.store.Delete(studentID) {
		err = session.ErrSessionNotFound
	}
	return err
}

// observe is deferred with a pointer to the named error so the event sees the
// final result.
func (s *coachService) observe(ctx context.Context, ev *UseCaseEvent, startedAt time.Time, errp *error) {
	ev.StartedAt = startedAt
	ev.Duration = time.Since(startedAt)
	ev.Err = *errp
	ev.Success = ev.Err == nil
	s.observer.ObserveUseCase(ctx, *ev)
}
