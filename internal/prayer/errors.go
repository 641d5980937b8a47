package prayer

import "errors"

// Domain errors for the prayer package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, prayer.ErrMalformedSchedule) {
//	    // provider payload was missing required fields
//	}
var (
	// ErrMalformedSchedule is returned when a provider payload is missing
	// required events or contains values that do not parse as a time of day.
	ErrMalformedSchedule = errors.New("prayer: malformed schedule")

	// ErrNoSchedule is returned when a lookup is attempted against an empty
	// schedule or calendar.
	ErrNoSchedule = errors.New("prayer: no schedule loaded")

	// ErrInvalidClockTime is returned when a time-of-day string cannot be parsed.
	ErrInvalidClockTime = errors.New("prayer: invalid clock time")
)
