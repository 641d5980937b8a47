package engine

import "errors"

// Domain errors for the engine package.
var (
	// ErrAlreadyStarted is returned when Start is called on a running engine.
	ErrAlreadyStarted = errors.New("engine: already started")

	// ErrNoProvider is returned when an engine is built without a schedule
	// provider.
	ErrNoProvider = errors.New("engine: no schedule provider configured")

	// ErrInvalidCoordinates is returned when SetLocation is given a latitude
	// or longitude outside the valid range.
	ErrInvalidCoordinates = errors.New("engine: coordinates out of range")
)
