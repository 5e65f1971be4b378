package api

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/incubator/internal/repository"
)

const maxCallsLimit = 500

// CallsHandler serves model call telemetry.
type CallsHandler struct {
	repo repository.CallLogRepo
}

func NewCallsHandler(repo repository.CallLogRepo) *CallsHandler {
	return &CallsHandler{repo: repo}
}

// List handles GET /llm/calls?limit=N
func (h *CallsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := repository.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxCallsLimit)
	}

	calls, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing calls: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toCallsResponse(calls))
}

// Summary handles GET /llm/summary
func (h *CallsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "summarizing calls: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Total:        s.Total,
		Succeeded:    s.Succeeded,
		Failed:       s.Failed,
		SuccessRate:  s.SuccessRate(),
		AvgLatencyMs: s.AvgLatencyMs,
		ByErrorCode:  s.ByErrorCode,
	})
}
