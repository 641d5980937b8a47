// Package engine orchestrates the daemon's prayer-time state.
//
// The engine is an explicit instance owning the live location, the daily
// schedule, the monthly imsakiyah calendar, the subscription machine and
// the minute-tick notifier. There are no ambient globals: everything hangs
// off the Engine and dies with Close.
//
// # Key Types
//
//   - Engine: lifecycle-managed owner of all mutable prayer-time state
//   - Status: snapshot of engine state for presentation
//   - Provider: schedule source (the AlAdhan client in production)
//
// # Lifecycle
//
// Start sets the fallback location immediately, then resolves the real
// location and fetches the schedule asynchronously; consumers see a loading
// state until the first fetch settles. A refresh ticker re-reads the host
// permission and detects calendar-day rollover, refetching the schedule for
// the new date. Fetch failures keep the previous day's data rather than
// clearing it.
//
// # Thread Safety
//
//   - All exported methods are safe for concurrent use.
//   - Mutation (SetLocation, ToggleSubscription) is expected from a single
//     writer; reads can come from any goroutine.
package engine
