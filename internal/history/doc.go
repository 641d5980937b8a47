// Package history persists reminder deliveries.
//
// The SQLite repository backs two concerns: the notifier's per-day dedup
// (which events already fired today, surviving restarts) and the API's
// recent-delivery listing. An optional time-series recorder mirrors
// deliveries to InfluxDB for dashboarding; it is fan-out only and never
// participates in dedup.
package history
