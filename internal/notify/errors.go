package notify

import "errors"

// Domain errors for the notify package.
var (
	// ErrDeliveryFailed is returned when the sink cannot present a reminder.
	// Non-fatal: the notifier logs it and keeps ticking.
	ErrDeliveryFailed = errors.New("notify: reminder delivery failed")

	// ErrAlreadyRunning is returned when Start is called on a running notifier.
	ErrAlreadyRunning = errors.New("notify: notifier already running")

	// ErrNoSink is returned when a notifier is built without a delivery sink.
	ErrNoSink = errors.New("notify: no sink configured")
)
