package location

import "errors"

// Domain errors for the location package.
var (
	// ErrUnavailable is returned by sources that cannot produce
	// coordinates (denied, timed out, or not configured).
	ErrUnavailable = errors.New("location: coordinates unavailable")
)
