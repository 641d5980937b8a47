package subscription

import "errors"

// Domain errors for the subscription package.
var (
	// ErrPermissionDenied is returned when arming is rejected because the
	// host denied (or just now denies) notification permission. Denied is
	// sticky: the machine will not re-prompt.
	ErrPermissionDenied = errors.New("subscription: permission denied")

	// ErrUnsupported is returned when the host exposes no notification
	// capability at all. Terminal for the process lifetime.
	ErrUnsupported = errors.New("subscription: notifications unsupported")
)
