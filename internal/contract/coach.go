package contract

import (
	"time"

	"github.com/alexanderramin/incubator/internal/domain"
)

// SessionView is a read-only snapshot of a student's session.
type SessionView struct {
	StudentID  string
	Mode       domain.Mode
	Progress   int
	Section    domain.Section
	Completed  bool
	CreatedAt  time.Time
	Transcript []domain.Turn
}

// NewSessionView projects a store copy into a view.
func NewSessionView(s *domain.Session) *SessionView {
	return &SessionView{
		StudentID:  s.ID,
		Mode:       s.Mode,
		Progress:   s.Progress,
		Section:    s.CurrentSection(),
		Completed:  IsCompleted(s.Progress),
		CreatedAt:  s.CreatedAt,
		Transcript: s.Transcript,
	}
}

type BMCQuestion struct {
	Question      string
	Progress      int
	TotalSections int
	Section       domain.Section
	Fallback      bool
}

type BMCProgress struct {
	Progress      int
	TotalSections int
	Section       domain.Section
	Completed     bool
}

// NewBMCProgress describes the canvas position for a progress cursor.
func NewBMCProgress(progress int) BMCProgress {
	return BMCProgress{
		Progress:      progress,
		TotalSections: domain.SectionCount,
		Section:       domain.SectionAt(progress),
		Completed:     IsCompleted(progress),
	}
}

// IsCompleted reports whether the cursor has passed every section once.
func IsCompleted(progress int) bool {
	return progress >= domain.SectionCount
}

type ChatReply struct {
	Response string
	Mode     domain.Mode
	Topic    string
	Fallback bool
}
