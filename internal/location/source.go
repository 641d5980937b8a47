package location

import "context"

// Source supplies raw coordinates. Implementations must honour the
// context deadline: the resolver bounds every acquisition attempt.
type Source interface {
	// Coordinates returns the current latitude and longitude, or
	// ErrUnavailable (possibly wrapped) when none can be produced.
	Coordinates(ctx context.Context) (latitude, longitude float64, err error)
}

// ConfigSource serves fixed coordinates from configuration.
type ConfigSource struct {
	latitude  float64
	longitude float64
	set       bool
}

// NewConfigSource creates a source for statically configured coordinates.
func NewConfigSource(latitude, longitude float64) *ConfigSource {
	return &ConfigSource{latitude: latitude, longitude: longitude, set: true}
}

// Coordinates returns the configured position.
func (s *ConfigSource) Coordinates(_ context.Context) (float64, float64, error) {
	if s == nil || !s.set {
		return 0, 0, ErrUnavailable
	}
	return s.latitude, s.longitude, nil
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (float64, float64, error)

// Coordinates calls f.
func (f SourceFunc) Coordinates(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}
