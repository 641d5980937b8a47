package history

import "errors"

// Domain errors for the history package.
var (
	// ErrDuplicate is returned when recording a scheduled reminder for a
	// (day, kind) pair that already has one.
	ErrDuplicate = errors.New("history: reminder already recorded for this day")
)
