package prayer

import "time"

// ImsakiyahDay is one row of the monthly Ramadan calendar: the pre-dawn
// eating cutoff (imsak) plus the fast boundaries for a single date.
type ImsakiyahDay struct {
	// Date is the structured Gregorian date of the row.
	Date time.Time `json:"date"`

	// DisplayDate is the provider-formatted date string, kept for
	// presentation (e.g. "12 Mar 2026").
	DisplayDate string `json:"display_date"`

	Imsak   ClockTime `json:"imsak"`
	Fajr    ClockTime `json:"fajr"`
	Maghrib ClockTime `json:"maghrib"`
}

// MonthlyCalendar is an ordered sequence of ImsakiyahDay covering one
// month. Rows are sorted by date ascending with no duplicates
// (see ValidateCalendar).
type MonthlyCalendar struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	Days []ImsakiyahDay `json:"days"`
}

// DayFor returns the row whose date equals the given day.
//
// Matching compares year, month and day of the structured date — not the
// provider's display string, which is locale-formatted and unreliable for
// equality.
func (c *MonthlyCalendar) DayFor(date time.Time) (ImsakiyahDay, bool) {
	for _, d := range c.Days {
		if SameDate(d.Date, date) {
			return d, true
		}
	}
	return ImsakiyahDay{}, false
}

// Cutoff returns the pre-dawn cutoff for the given date.
//
// When no row matches, the first row's cutoff is returned: an unmatched
// date usually means the calendar's month does not cover today (outside
// the observance period), and a representative value is better than none.
//
// Returns:
//   - ClockTime: today's cutoff, or day 1's as a fallback
//   - error: ErrNoSchedule if the calendar is empty
func (c *MonthlyCalendar) Cutoff(date time.Time) (ClockTime, error) {
	if c == nil || len(c.Days) == 0 {
		return ClockTime{}, ErrNoSchedule
	}

	if day, ok := c.DayFor(date); ok {
		return day.Imsak, nil
	}
	return c.Days[0].Imsak, nil
}
