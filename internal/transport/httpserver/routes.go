package httpserver

import (
	"net/http"

	"fitclub-go/internal/config"
	"fitclub-go/internal/metrics"
	"fitclub-go/internal/transport/httpserver/handler"
	"fitclub-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every endpoint. m may be nil, in which case /metrics is not served.
func NewRouter(cfg config.Config, handlers *handler.Handlers, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))
	r.Use(m.Middleware)

	r.Get("/", handlers.Overview)
	r.Get("/healthz", handlers.Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/members", func(r chi.Router) {
		r.Get("/", handlers.ListMembers)
		r.Get("/new", handlers.NewMemberForm)
		r.Post("/new", handlers.CreateMember)
		r.Get("/import", handlers.ImportMembersForm)
		r.Post("/import", handlers.ImportMembers)
		r.Get("/export", handlers.ExportMembers)
		r.Get("/{id}", handlers.GetMember)
		r.Get("/{id}/edit", handlers.EditMemberForm)
		r.Post("/{id}/edit", handlers.UpdateMember)
	})

	r.Get("/plans", handlers.ListPlans)
	r.Get("/trainers", handlers.ListTrainers)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", handlers.ListSessions)
		r.Get("/new", handlers.NewSessionForm)
		r.Post("/new", handlers.CreateSession)
		r.Get("/export", handlers.ExportSessions)
		r.Post("/{id}/book", handlers.BookSession)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/members/{id}/toggle-status", handlers.ToggleMemberStatus)
		r.Get("/sessions/{id}/bookings", handlers.SessionBookings)
	})

	return r
}
