package location

import (
	"context"
	"time"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// DefaultAcquireTimeout bounds how long a source may take to produce
// coordinates before the fallback applies.
const DefaultAcquireTimeout = 10 * time.Second

// Geocoder resolves coordinates to a place name. The shipped
// implementation is the BigDataCloud client.
type Geocoder interface {
	CityName(ctx context.Context, latitude, longitude float64) (string, error)
}

// Logger defines the logging interface used by the Resolver.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Resolver turns a Source plus a Geocoder into a usable prayer.Location.
type Resolver struct {
	source   Source
	geocoder Geocoder
	logger   Logger
	timeout  time.Duration
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithAcquireTimeout overrides DefaultAcquireTimeout.
func WithAcquireTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver creates a resolver. Both source and geocoder may be nil:
// a nil source always falls back to Jakarta, a nil geocoder skips label
// enrichment.
func NewResolver(source Source, geocoder Geocoder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:   source,
		geocoder: geocoder,
		logger:   noopLogger{},
		timeout:  DefaultAcquireTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the active location. It never fails: every degrade
// path ends in a usable Location.
//
// Coordinates come from the source, bounded by the acquire timeout; any
// failure selects the Jakarta fallback with its fixed label. Successfully
// acquired coordinates get a reverse-geocoded label, degrading to
// PlaceholderLabel when the lookup fails.
func (r *Resolver) Resolve(ctx context.Context) prayer.Location {
	lat, lon, err := r.acquire(ctx)
	if err != nil {
		r.logger.Warn("location acquisition failed, using fallback", "error", err)
		return prayer.DefaultLocation()
	}

	loc := prayer.Location{
		Latitude:  lat,
		Longitude: lon,
		Label:     prayer.PlaceholderLabel,
	}

	if r.geocoder != nil {
		if name, err := r.geocoder.CityName(ctx, lat, lon); err != nil {
			r.logger.Warn("reverse geocoding failed, keeping placeholder label", "error", err)
		} else {
			loc.Label = name
		}
	}

	r.logger.Info("location resolved",
		"latitude", loc.Latitude,
		"longitude", loc.Longitude,
		"label", loc.Label,
	)
	return loc
}

// acquire asks the source for coordinates under the acquire timeout.
func (r *Resolver) acquire(ctx context.Context) (float64, float64, error) {
	if r.source == nil {
		return 0, 0, ErrUnavailable
	}

	acquireCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.source.Coordinates(acquireCtx)
}
