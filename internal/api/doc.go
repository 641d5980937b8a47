// Package api provides the HTTP REST API for the daemon.
//
// It exposes the prayer schedule, imsakiyah calendar, location and
// reminder subscription to user interfaces (wall panels, mobile apps).
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
