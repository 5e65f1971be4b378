package domain

import "time"

// LLMCall is the persisted record of one completion, retries included.
// It carries no prompt or transcript content.
type LLMCall struct {
	ID        string
	Task      string
	Backend   string
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
	CreatedAt time.Time
}

// CallSummary aggregates recorded calls.
type CallSummary struct {
	Total        int
	Succeeded    int
	Failed       int
	AvgLatencyMs float64
	ByErrorCode  map[string]int
}

// SuccessRate is Succeeded/Total, or 0 with no calls.
func (s CallSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total)
}
