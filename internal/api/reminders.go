package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// handleGetSubscription returns the reminder subscription status.
//
// GET /api/v1/reminders/subscription
func (s *Server) handleGetSubscription(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Subscription())
}

// handleToggleSubscription flips the reminder subscription, driving the
// permission prompt when needed.
//
// POST /api/v1/reminders/subscription/toggle
func (s *Server) handleToggleSubscription(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.ToggleSubscription(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrPermissionDenied):
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "notification permission denied")
		case errors.Is(err, subscription.ErrUnsupported):
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "notifications unsupported on this host")
		default:
			writeInternalError(w, "toggling subscription failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// handleTestReminder delivers a test reminder immediately.
//
// POST /api/v1/reminders/test
func (s *Server) handleTestReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SendTestReminder(r.Context()); err != nil {
		switch {
		case errors.Is(err, subscription.ErrPermissionDenied):
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "notification permission denied")
		case errors.Is(err, subscription.ErrUnsupported):
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "notifications unsupported on this host")
		case errors.Is(err, notify.ErrDeliveryFailed):
			writeError(w, http.StatusBadGateway, ErrCodeInternal, "reminder delivery failed")
		default:
			writeInternalError(w, "sending test reminder failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "delivered"})
}

// handleReminderHistory lists recent reminder deliveries, newest first.
//
// GET /api/v1/reminders/history?limit=N
func (s *Server) handleReminderHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "reminder history not enabled")
		return
	}

	limit := s.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing reminder history", "error", err)
		writeInternalError(w, "listing reminder history failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
