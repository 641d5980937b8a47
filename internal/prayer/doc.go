// Package prayer holds the schedule model for Adhan Core.
//
// A DailySchedule is the ordered set of six prayer events for one calendar
// date at one location. A MonthlyCalendar is the month of imsakiyah rows
// used during Ramadan. Both are plain data holders: fetching and parsing
// provider payloads happens in internal/provider, this package only
// validates shape and answers questions about the data.
//
// # Key Types
//
//   - EventKind: fixed six-kind enumeration (Fajr .. Isha)
//   - ClockTime: a time of day without a date component
//   - DailySchedule: six events for one date, immutable once built
//   - MonthlyCalendar: imsakiyah rows for one month, sorted by date
//
// # Invariants
//
// Within a schedule, event times are non-decreasing in kind order. Sunrise
// is informational only and is never returned by NextEvent nor used as a
// reminder trigger. Schedules are replaced wholesale, never patched.
package prayer
