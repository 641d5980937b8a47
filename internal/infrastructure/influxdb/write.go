package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteReminder records one reminder delivery.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - kind: Event name (e.g. "Maghrib"), or "Test" for test deliveries
//   - location: Location label the reminder was delivered for
//   - test: Whether this was a test delivery
func (c *Client) WriteReminder(kind, location string, test bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"reminder_delivery",
		map[string]string{
			"kind":     kind,
			"location": location,
		},
		map[string]interface{}{
			"count": 1,
			"test":  test,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteFetch records the outcome of a provider fetch.
//
// Parameters:
//   - endpoint: "timings" or "calendar"
//   - ok: Whether the fetch produced a usable payload
//   - elapsed: Request duration
func (c *Client) WriteFetch(endpoint string, ok bool, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"provider_fetch",
		map[string]string{
			"endpoint": endpoint,
		},
		map[string]interface{}{
			"ok":          ok,
			"duration_ms": elapsed.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
