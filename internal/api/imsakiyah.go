package api

import (
	"net/http"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// imsakiyahDayPayload is the wire form of one calendar row.
type imsakiyahDayPayload struct {
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Imsak       string `json:"imsak"`
	Fajr        string `json:"fajr"`
	Maghrib     string `json:"maghrib"`
}

// imsakiyahPayload is the wire form of the monthly calendar.
type imsakiyahPayload struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []imsakiyahDayPayload `json:"days"`
}

func toImsakiyahDayPayload(d prayer.ImsakiyahDay) imsakiyahDayPayload {
	return imsakiyahDayPayload{
		Date:        d.Date.Format("2006-01-02"),
		DisplayDate: d.DisplayDate,
		Imsak:       d.Imsak.String(),
		Fajr:        d.Fajr.String(),
		Maghrib:     d.Maghrib.String(),
	}
}

// handleImsakiyahMonth returns the full monthly calendar.
//
// GET /api/v1/imsakiyah
func (s *Server) handleImsakiyahMonth(w http.ResponseWriter, _ *http.Request) {
	cal := s.engine.Calendar()
	if cal == nil {
		writeUnavailable(w, "imsakiyah calendar not loaded")
		return
	}

	payload := imsakiyahPayload{
		Year:  cal.Year,
		Month: int(cal.Month),
		Days:  make([]imsakiyahDayPayload, 0, len(cal.Days)),
	}
	for _, d := range cal.Days {
		payload.Days = append(payload.Days, toImsakiyahDayPayload(d))
	}

	writeJSON(w, http.StatusOK, payload)
}

// handleImsakiyahToday returns today's pre-dawn cutoff.
//
// GET /api/v1/imsakiyah/today
func (s *Server) handleImsakiyahToday(w http.ResponseWriter, _ *http.Request) {
	imsak, err := s.engine.TodayImsak()
	if err != nil {
		writeUnavailable(w, "imsakiyah calendar not loaded")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imsak": imsak.String()})
}
