package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventKind identifies one of the six fixed daily prayer events.
//
// The zero value is KindFajr. Kinds are ordered: iterating from KindFajr to
// KindIsha walks the day chronologically.
type EventKind int

const (
	KindFajr EventKind = iota
	KindSunrise
	KindDhuhr
	KindAsr
	KindMaghrib
	KindIsha
)

// eventKindCount is the number of kinds in the enumeration.
const eventKindCount = 6

// AllKinds returns the six event kinds in chronological order.
func AllKinds() []EventKind {
	return []EventKind{KindFajr, KindSunrise, KindDhuhr, KindAsr, KindMaghrib, KindIsha}
}

// String returns the provider-canonical name of the kind (e.g. "Fajr").
// These match the AlAdhan API timing keys.
func (k EventKind) String() string {
	switch k {
	case KindFajr:
		return "Fajr"
	case KindSunrise:
		return "Sunrise"
	case KindDhuhr:
		return "Dhuhr"
	case KindAsr:
		return "Asr"
	case KindMaghrib:
		return "Maghrib"
	case KindIsha:
		return "Isha"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Label returns the Indonesian display name used in reminders and the UI.
func (k EventKind) Label() string {
	switch k {
	case KindFajr:
		return "Subuh"
	case KindSunrise:
		return "Terbit"
	case KindDhuhr:
		return "Dzuhur"
	case KindAsr:
		return "Ashar"
	case KindMaghrib:
		return "Maghrib"
	case KindIsha:
		return "Isya"
	default:
		return k.String()
	}
}

// Notifiable reports whether this kind may trigger a reminder.
// Sunrise marks the end of Fajr, not a prayer, so it is display-only.
func (k EventKind) Notifiable() bool {
	return k != KindSunrise
}

// KindFromName maps a provider timing key (e.g. "Maghrib") to its kind.
func KindFromName(name string) (EventKind, bool) {
	for _, k := range AllKinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// ClockTime is a time of day with minute precision and no date component.
// Comparisons are done on total minutes since midnight.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a provider time-of-day string.
//
// Accepted forms are "HH:MM" and "HH:MM (TZ)" — AlAdhan appends the
// timezone abbreviation to calendar timings, so anything after the first
// space is discarded.
//
// Returns:
//   - ClockTime: the parsed value
//   - error: ErrInvalidClockTime (wrapped) if the string is not a valid time
func ParseClockTime(s string) (ClockTime, error) {
	trimmed := strings.TrimSpace(s)
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		trimmed = trimmed[:i]
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q out of range", ErrInvalidClockTime, s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ClockTimeOf truncates a wall-clock instant to minute precision.
// Seconds and sub-second components are discarded.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the total minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// After reports whether c is strictly later in the day than other.
func (c ClockTime) After(other ClockTime) bool {
	return c.Minutes() > other.Minutes()
}

// Equal reports whether c and other name the same minute.
func (c ClockTime) Equal(other ClockTime) bool {
	return c.Minutes() == other.Minutes()
}

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// DailyEvent is one time-of-day marker within a day's schedule.
type DailyEvent struct {
	Kind EventKind `json:"kind"`
	Time ClockTime `json:"time"`
}

// DailySchedule is the ordered set of six events for exactly one calendar
// date at one location. It is immutable after construction and replaced
// wholesale when the location or date changes.
type DailySchedule struct {
	// Date is the calendar date the schedule covers (time component unused).
	Date time.Time `json:"date"`

	// Events holds exactly six entries ordered by EventKind.
	Events []DailyEvent `json:"events"`
}

// Event returns the entry for the given kind.
func (s *DailySchedule) Event(kind EventKind) DailyEvent {
	return s.Events[int(kind)]
}

// Monotonic reports whether event times are non-decreasing in kind order.
// Real provider data always satisfies this; it is asserted in tests rather
// than enforced at construction.
func (s *DailySchedule) Monotonic() bool {
	for i := 1; i < len(s.Events); i++ {
		if s.Events[i-1].Time.After(s.Events[i].Time) {
			return false
		}
	}
	return true
}

// Location is a geographic position with a human-readable label.
//
// Only one Location is live at a time. Replacing it invalidates the daily
// schedule and monthly calendar, which must be re-fetched before use.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// PlaceholderLabel is used when coordinates are known but reverse
// geocoding has not resolved (or failed to resolve) a city name.
const PlaceholderLabel = "Lokasi Anda"

// DefaultLocation is the fixed fallback used when no location source is
// available or resolution fails: central Jakarta.
func DefaultLocation() Location {
	return Location{
		Latitude:  -6.2088,
		Longitude: 106.8456,
		Label:     "Jakarta",
	}
}

// SameDate reports whether two instants fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
