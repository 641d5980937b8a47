// Package aladhan fetches prayer timetables from the AlAdhan public API.
//
// Two endpoints are used: /v1/timings/{DD-MM-YYYY} for a single day's
// schedule and /v1/calendar/{year}/{month} for the monthly imsakiyah
// timetable. Responses are validated into the prayer package's types
// before they reach callers; a payload missing any of the six daily
// events is rejected as a whole rather than patched.
//
// # Key Types
//
//   - Client: HTTP client with configurable base URL, method and timeout
//
// # Thread Safety
//
// Client is safe for concurrent use.
package aladhan
