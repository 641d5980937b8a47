package aladhan

// Wire types for AlAdhan API responses. Only the fields we read are
// declared; the API returns considerably more.

// timingsResponse is the envelope for /v1/timings/{date}.
type timingsResponse struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   timingsData `json:"data"`
}

type timingsData struct {
	Timings map[string]string `json:"timings"`
	Date    wireDate          `json:"date"`
}

// calendarResponse is the envelope for /v1/calendar/{year}/{month}.
type calendarResponse struct {
	Code   int           `json:"code"`
	Status string        `json:"status"`
	Data   []timingsData `json:"data"`
}

type wireDate struct {
	Readable  string        `json:"readable"`
	Gregorian gregorianDate `json:"gregorian"`
}

type gregorianDate struct {
	// Date is formatted DD-MM-YYYY.
	Date string `json:"date"`
}
