package api

import (
	"context"
	"net/http"
)

// ModelStatus reports on the generation backend; llm.CompletionClient
// implements it.
type ModelStatus interface {
	Backend() string
	Configured() bool
	Available(ctx context.Context) bool
}

// SessionCounter reports live sessions; session.Store implements it.
type SessionCounter interface {
	Len() int
}

type HealthHandler struct {
	model    ModelStatus
	sessions SessionCounter
}

func NewHealthHandler(model ModelStatus, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{model: model, sessions: sessions}
}

// Health handles GET /health. The service stays usable without a model, so a
// missing backend degrades the status but still answers 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		LLM: llmHealth{
			Backend:    h.model.Backend(),
			Configured: h.model.Configured(),
		},
		ActiveSessions: h.sessions.Len(),
	}
	if resp.LLM.Configured {
		resp.LLM.Available = h.model.Available(r.Context())
	}
	if !resp.LLM.Available {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}
