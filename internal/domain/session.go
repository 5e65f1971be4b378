package domain

import "time"

type Turn struct {
	Role    Role
	Content string
}

// Session is one student's ongoing conversation. Sessions are owned by the
// session store; values handed out by the store are copies.
type Session struct {
	ID         string
	Mode       Mode
	Transcript []Turn
	Progress   int
	CreatedAt  time.Time
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Transcript = make([]Turn, len(s.Transcript))
	copy(c.Transcript, s.Transcript)
	return &c
}

// LastTurn returns the most recent turn, if any.
func (s *Session) LastTurn() (Turn, bool) {
	if len(s.Transcript) == 0 {
		return Turn{}, false
	}
	return s.Transcript[len(s.Transcript)-1], true
}

// CurrentSection resolves the canvas section the progress cursor points at.
func (s *Session) CurrentSection() Section {
	return SectionAt(s.Progress)
}
