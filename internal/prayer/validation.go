package prayer

import (
	"fmt"
	"time"
)

// NewDailySchedule builds and shape-validates a schedule from raw provider
// timings keyed by canonical event name ("Fajr", "Sunrise", ...).
//
// Validation covers shape only: all six kinds must be present and parse as
// a valid time of day. Extra keys in the payload (Imsak, Midnight, ...) are
// ignored.
//
// Parameters:
//   - date: The calendar date the timings cover
//   - timings: Provider payload, event name → time string
//
// Returns:
//   - *DailySchedule: Validated schedule with events in kind order
//   - error: ErrMalformedSchedule (wrapped) if a kind is missing or unparseable
func NewDailySchedule(date time.Time, timings map[string]string) (*DailySchedule, error) {
	events := make([]DailyEvent, 0, eventKindCount)

	for _, kind := range AllKinds() {
		raw, ok := timings[kind.String()]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedSchedule, kind)
		}

		t, err := ParseClockTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSchedule, kind, err)
		}

		events = append(events, DailyEvent{Kind: kind, Time: t})
	}

	return &DailySchedule{Date: date, Events: events}, nil
}

// ValidateCalendar checks the MonthlyCalendar invariants: at least one row,
// rows sorted by date ascending, no duplicate dates, per-row times present.
//
// Returns:
//   - error: ErrMalformedSchedule (wrapped) describing the first violation
func ValidateCalendar(c *MonthlyCalendar) error {
	if c == nil || len(c.Days) == 0 {
		return fmt.Errorf("%w: empty calendar", ErrMalformedSchedule)
	}

	for i := 1; i < len(c.Days); i++ {
		prev, cur := c.Days[i-1].Date, c.Days[i].Date
		if SameDate(prev, cur) {
			return fmt.Errorf("%w: duplicate date %s", ErrMalformedSchedule, cur.Format("2006-01-02"))
		}
		if cur.Before(prev) {
			return fmt.Errorf("%w: dates not ascending at row %d", ErrMalformedSchedule, i)
		}
	}

	return nil
}
