package api

import (
	"time"

	"github.com/samber/lo"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
)

type startSessionRequest struct {
	StudentID string `json:"student_id"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type turnJSON struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sectionJSON struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type sessionResponse struct {
	StudentID     string      `json:"student_id"`
	Mode          string      `json:"mode"`
	Progress      int         `json:"progress"`
	TotalSections int         `json:"total_sections"`
	Section       sectionJSON `json:"section"`
	Completed     bool        `json:"completed"`
	CreatedAt     time.Time   `json:"created_at"`
	Transcript    []turnJSON  `json:"transcript"`
}

type questionResponse struct {
	Question      string      `json:"question"`
	Progress      int         `json:"progress"`
	TotalSections int         `json:"total_sections"`
	Section       sectionJSON `json:"section"`
	Fallback      bool        `json:"fallback"`
}

type progressResponse struct {
	Progress      int         `json:"progress"`
	TotalSections int         `json:"total_sections"`
	Section       sectionJSON `json:"section"`
	Completed     bool        `json:"completed"`
}

type chatResponse struct {
	Response string `json:"response"`
	Mode     string `json:"mode"`
	Topic    string `json:"topic"`
	Fallback bool   `json:"fallback"`
}

type callJSON struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Backend   string    `json:"backend"`
	Model     string    `json:"model"`
	Attempts  int       `json:"attempts"`
	LatencyMs int64     `json:"latency_ms"`
	Success   bool      `json:"success"`
	ErrorCode string    `json:"error_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type callsResponse struct {
	Calls []callJSON `json:"calls"`
}

type summaryResponse struct {
	Total        int            `json:"total"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	SuccessRate  float64        `json:"success_rate"`
	AvgLatencyMs float64        `json:"avg_latency_ms"`
	ByErrorCode  map[string]int `json:"by_error_code"`
}

type llmHealth struct {
	Backend    string `json:"backend"`
	Configured bool   `json:"configured"`
	Available  bool   `json:"available"`
}

type healthResponse struct {
	Status         string    `json:"status"`
	LLM            llmHealth `json:"llm"`
	ActiveSessions int       `json:"active_sessions"`
}

func toSectionJSON(s domain.Section) sectionJSON {
	return sectionJSON{Key: string(s.Key), Name: s.Name, Label: s.Label}
}

func toSessionResponse(v *contract.SessionView) sessionResponse {
	return sessionResponse{
		StudentID:     v.StudentID,
		Mode:          string(v.Mode),
		Progress:      v.Progress,
		TotalSections: domain.SectionCount,
		Section:       toSectionJSON(v.Section),
		Completed:     v.Completed,
		CreatedAt:     v.CreatedAt,
		Transcript: lo.Map(v.Transcript, func(t domain.Turn, _ int) turnJSON {
			return turnJSON{Role: string(t.Role), Content: t.Content}
		}),
	}
}

func toProgressResponse(p *contract.BMCProgress) progressResponse {
	return progressResponse{
		Progress:      p.Progress,
		TotalSections: p.TotalSections,
		Section:       toSectionJSON(p.Section),
		Completed:     p.Completed,
	}
}

func toCallsResponse(calls []*domain.LLMCall) callsResponse {
	return callsResponse{Calls: lo.Map(calls, func(c *domain.LLMCall, _ int) callJSON {
		return callJSON{
			ID:        c.ID,
			Task:      c.Task,
			Backend:   c.Backend,
			Model:     c.Model,
			Attempts:  c.Attempts,
			LatencyMs: c.LatencyMs,
			Success:   c.Success,
			ErrorCode: c.ErrorCode,
			CreatedAt: c.CreatedAt,
		}
	})}
}
