package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/alexanderramin/incubator/internal/service"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Coach    service.CoachService
	Calls    repository.CallLogRepo
	Model    ModelStatus
	Sessions SessionCounter
	APIKey   string
	Logger   *slog.Logger
}

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(d.Model, d.Sessions)
	sessionH := NewSessionHandler(d.Coach)

	r.Get("/health", healthH.Health)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(d.APIKey))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionH.Start)
			r.Get("/{id}", sessionH.Get)
			r.Delete("/{id}", sessionH.End)
			r.Post("/{id}/bmc/next", sessionH.NextQuestion)
			r.Post("/{id}/bmc/advance", sessionH.Advance)
			r.Post("/{id}/bmc/answer", sessionH.Answer)
			r.Post("/{id}/chat", sessionH.Chat)
		})

		if d.Calls != nil {
			callsH := NewCallsHandler(d.Calls)
			r.Route("/llm", func(r chi.Router) {
				r.Get("/calls", callsH.List)
				r.Get("/summary", callsH.Summary)
			})
		}
	})

	return r
}
