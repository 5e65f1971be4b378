package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/incubator/internal/service"
)

// SessionHandler serves the coaching session endpoints.
type SessionHandler struct {
	coach service.CoachService
}

func NewSessionHandler(coach service.CoachService) *SessionHandler {
	return &SessionHandler{coach: coach}
}

// Start handles POST /sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	view, err := h.coach.StartSession(r.Context(), req.StudentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.coach.Transcript(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// End handles DELETE /sessions/{id}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.coach.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NextQuestion handles POST /sessions/{id}/bmc/next
func (h *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.coach.NextBMCQuestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{
		Question:      q.Question,
		Progress:      q.Progress,
		TotalSections: q.TotalSections,
		Section:       toSectionJSON(q.Section),
		Fallback:      q.Fallback,
	})
}

// Advance handles POST /sessions/{id}/bmc/advance
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	p, err := h.coach.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

// Answer handles POST /sessions/{id}/bmc/answer
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.coach.Answer(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

// Chat handles POST /sessions/{id}/chat
func (h *SessionHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reply, err := h.coach.Chat(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Response: reply.Response,
		Mode:     string(reply.Mode),
		Topic:    reply.Topic,
		Fallback: reply.Fallback,
	})
}
