package prayer

// NextEvent returns the single upcoming event relative to the given time
// of day, skipping Sunrise.
//
// Events are scanned in kind order and the first whose time is strictly
// later than now wins. A time exactly equal to now is not upcoming —
// equality belongs to the minute-tick notifier, not the resolver. When
// every event has passed, the result wraps to Fajr, representing
// tomorrow's occurrence; the caller only needs the label and time of day,
// not tomorrow's actual values.
//
// The resolver has no side effects and is cheap enough to call on every
// display refresh.
func (s *DailySchedule) NextEvent(now ClockTime) DailyEvent {
	for _, ev := range s.Events {
		if !ev.Kind.Notifiable() {
			continue
		}
		if ev.Time.After(now) {
			return ev
		}
	}

	// All of today's events have passed: wrap to the first notifiable event.
	return s.Events[0]
}
