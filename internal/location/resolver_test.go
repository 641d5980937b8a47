package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// mockGeocoder returns a canned name or error.
type mockGeocoder struct {
	name string
	err  error
}

func (g *mockGeocoder) CityName(_ context.Context, _, _ float64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.name, nil
}

func TestResolve_SourceAndGeocoder(t *testing.T) {
	r := NewResolver(
		NewConfigSource(-7.7956, 110.3695),
		&mockGeocoder{name: "Yogyakarta"},
	)

	loc := r.Resolve(context.Background())
	if loc.Latitude != -7.7956 || loc.Longitude != 110.3695 {
		t.Errorf("coordinates = %f,%f", loc.Latitude, loc.Longitude)
	}
	if loc.Label != "Yogyakarta" {
		t.Errorf("label = %q", loc.Label)
	}
}

func TestResolve_GeocodeFailureKeepsCoordinates(t *testing.T) {
	r := NewResolver(
		NewConfigSource(-7.7956, 110.3695),
		&mockGeocoder{err: errors.New("api down")},
	)

	loc := r.Resolve(context.Background())
	if loc.Latitude != -7.7956 {
		t.Errorf("coordinates lost on label failure: %f", loc.Latitude)
	}
	if loc.Label != prayer.PlaceholderLabel {
		t.Errorf("label = %q, want placeholder", loc.Label)
	}
}

func TestResolve_NilGeocoder(t *testing.T) {
	r := NewResolver(NewConfigSource(-7.7956, 110.3695), nil)

	loc := r.Resolve(context.Background())
	if loc.Label != prayer.PlaceholderLabel {
		t.Errorf("label = %q, want placeholder", loc.Label)
	}
}

func TestResolve_SourceFailureFallsBack(t *testing.T) {
	failing := SourceFunc(func(_ context.Context) (float64, float64, error) {
		return 0, 0, ErrUnavailable
	})
	r := NewResolver(failing, &mockGeocoder{name: "should not be used"})

	loc := r.Resolve(context.Background())
	want := prayer.DefaultLocation()
	if loc != want {
		t.Errorf("got %+v, want Jakarta fallback %+v", loc, want)
	}
}

func TestResolve_NilSourceFallsBack(t *testing.T) {
	r := NewResolver(nil, nil)

	loc := r.Resolve(context.Background())
	if loc != prayer.DefaultLocation() {
		t.Errorf("got %+v, want Jakarta fallback", loc)
	}
}

func TestResolve_TimeoutFallsBack(t *testing.T) {
	slow := SourceFunc(func(ctx context.Context) (float64, float64, error) {
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return -6.2088, 106.8456, nil
		}
	})
	r := NewResolver(slow, nil, WithAcquireTimeout(20*time.Millisecond))

	start := time.Now()
	loc := r.Resolve(context.Background())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("resolve took %v, timeout not applied", elapsed)
	}
	if loc != prayer.DefaultLocation() {
		t.Errorf("got %+v, want Jakarta fallback", loc)
	}
}
