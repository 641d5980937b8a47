package aladhan

import "errors"

// Domain errors for the aladhan package.
var (
	// ErrScheduleUnavailable is returned when the API cannot be reached or
	// returns a non-success response. Callers keep serving previously
	// fetched data when they see this.
	ErrScheduleUnavailable = errors.New("aladhan: schedule unavailable")

	// ErrBadPayload is returned when the API responds successfully but the
	// body cannot be decoded or fails validation.
	ErrBadPayload = errors.New("aladhan: malformed payload")
)
