package api

import (
	"net/http"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// eventPayload is the wire form of one schedule event.
type eventPayload struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

// schedulePayload is the wire form of the daily schedule.
type schedulePayload struct {
	Date     string          `json:"date"`
	Location prayer.Location `json:"location"`
	Events   []eventPayload  `json:"events"`
}

func toEventPayload(ev prayer.DailyEvent) eventPayload {
	return eventPayload{
		Kind:  ev.Kind.String(),
		Label: ev.Kind.Label(),
		Time:  ev.Time.String(),
	}
}

// handleScheduleToday returns today's full schedule.
//
// GET /api/v1/schedule/today
func (s *Server) handleScheduleToday(w http.ResponseWriter, _ *http.Request) {
	sched := s.engine.Schedule()
	if sched == nil {
		writeUnavailable(w, "schedule not loaded")
		return
	}

	payload := schedulePayload{
		Date:     sched.Date.Format("2006-01-02"),
		Location: s.engine.Location(),
		Events:   make([]eventPayload, 0, len(sched.Events)),
	}
	for _, ev := range sched.Events {
		payload.Events = append(payload.Events, toEventPayload(ev))
	}

	writeJSON(w, http.StatusOK, payload)
}

// handleNextEvent returns the single upcoming event.
//
// GET /api/v1/schedule/next
func (s *Server) handleNextEvent(w http.ResponseWriter, _ *http.Request) {
	ev, err := s.engine.NextEvent()
	if err != nil {
		writeUnavailable(w, "schedule not loaded")
		return
	}

	writeJSON(w, http.StatusOK, toEventPayload(ev))
}
