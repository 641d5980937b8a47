package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)

		// Schedule endpoints
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/today", s.handleScheduleToday)
			r.Get("/next", s.handleNextEvent)
		})

		// Imsakiyah endpoints
		r.Route("/imsakiyah", func(r chi.Router) {
			r.Get("/", s.handleImsakiyahMonth)
			r.Get("/today", s.handleImsakiyahToday)
		})

		// Location endpoints
		r.Route("/location", func(r chi.Router) {
			r.Get("/", s.handleGetLocation)
			r.Put("/", s.handleSetLocation)
		})

		// Reminder endpoints
		r.Route("/reminders", func(r chi.Router) {
			r.Get("/subscription", s.handleGetSubscription)
			r.Post("/subscription/toggle", s.handleToggleSubscription)
			r.Post("/test", s.handleTestReminder)
			r.Get("/history", s.handleReminderHistory)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleStatus returns the engine's full state snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Status())
}
