package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fajrlabs/adhan-core/internal/engine"
)

// setLocationRequest is the PUT /location request body.
type setLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// handleGetLocation returns the live location.
//
// GET /api/v1/location
func (s *Server) handleGetLocation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Location())
}

// handleSetLocation replaces the live location with explicit coordinates.
// The old schedule is invalidated and refetched; the response carries the
// engine state so the caller can see whether the fetch settled.
//
// PUT /api/v1/location
func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var req setLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.engine.SetLocation(r.Context(), req.Latitude, req.Longitude); err != nil {
		if errors.Is(err, engine.ErrInvalidCoordinates) {
			writeBadRequest(w, "coordinates out of range")
			return
		}
		// The location took effect but the refetch failed; report it in
		// the snapshot rather than as a request error.
		s.logger.Warn("schedule fetch after location change failed", "error", err)
	}

	writeJSON(w, http.StatusOK, s.engine.Status())
}
