// Package notify implements the minute-tick reminder notifier.
//
// A Notifier is bound to one immutable DailySchedule and one location. Every
// tick (60 seconds of wall clock) it truncates "now" to the minute and fires
// one reminder for each non-Sunrise event whose time equals that minute, at
// most once per event per calendar day. The engine owns the lifecycle: when
// the schedule is replaced or the subscription preconditions fail, the
// notifier is stopped outright and a fresh instance is created — there is
// never a live tick loop closed over a stale schedule.
//
// Delivery goes through the Sink interface. The shipped implementation
// publishes show/dismiss messages on the MQTT bus for wall-panel shells;
// reminders auto-dismiss after a fixed display duration.
//
// This is a best-effort mechanism, not a durable scheduler: nothing fires
// while the process is down. Fired events are recorded through the optional
// Recorder hook so a restart within the same day does not re-deliver.
package notify
