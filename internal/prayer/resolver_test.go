package prayer

import (
	"testing"
	"time"
)

// testSchedule mirrors a typical Jakarta day:
// Fajr 04:30, Sunrise 05:45, Dhuhr 12:00, Asr 15:15, Maghrib 18:00, Isha 19:15.
func testSchedule(t *testing.T) *DailySchedule {
	t.Helper()

	s, err := NewDailySchedule(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), map[string]string{
		"Fajr":    "04:30",
		"Sunrise": "05:45",
		"Dhuhr":   "12:00",
		"Asr":     "15:15",
		"Maghrib": "18:00",
		"Isha":    "19:15",
	})
	if err != nil {
		t.Fatalf("NewDailySchedule: %v", err)
	}
	return s
}

func TestNextEvent(t *testing.T) {
	tests := []struct {
		name     string
		now      ClockTime
		wantKind EventKind
		wantTime ClockTime
	}{
		{name: "before dawn", now: ClockTime{3, 0}, wantKind: KindFajr, wantTime: ClockTime{4, 30}},
		{name: "midday", now: ClockTime{13, 0}, wantKind: KindAsr, wantTime: ClockTime{15, 15}},
		{name: "between fajr and sunrise skips sunrise", now: ClockTime{5, 0}, wantKind: KindDhuhr, wantTime: ClockTime{12, 0}},
		{name: "exactly at dhuhr is not upcoming", now: ClockTime{12, 0}, wantKind: KindAsr, wantTime: ClockTime{15, 15}},
		{name: "one minute before isha", now: ClockTime{19, 14}, wantKind: KindIsha, wantTime: ClockTime{19, 15}},
		{name: "after isha wraps to fajr", now: ClockTime{20, 0}, wantKind: KindFajr, wantTime: ClockTime{4, 30}},
		{name: "exactly at isha wraps", now: ClockTime{19, 15}, wantKind: KindFajr, wantTime: ClockTime{4, 30}},
	}

	sched := testSchedule(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sched.NextEvent(tt.now)
			if got.Kind != tt.wantKind {
				t.Errorf("NextEvent(%v).Kind = %s, want %s", tt.now, got.Kind, tt.wantKind)
			}
			if !got.Time.Equal(tt.wantTime) {
				t.Errorf("NextEvent(%v).Time = %v, want %v", tt.now, got.Time, tt.wantTime)
			}
		})
	}
}

// NextEvent must never return Sunrise, whatever the query time.
func TestNextEvent_NeverSunrise(t *testing.T) {
	sched := testSchedule(t)
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 29, 59} {
			got := sched.NextEvent(ClockTime{hour, minute})
			if got.Kind == KindSunrise {
				t.Fatalf("NextEvent(%02d:%02d) returned Sunrise", hour, minute)
			}
		}
	}
}

func TestMonotonic(t *testing.T) {
	sched := testSchedule(t)
	if !sched.Monotonic() {
		t.Error("test schedule should be monotonic")
	}

	// Swap two times to break the invariant.
	broken := *sched
	broken.Events = append([]DailyEvent(nil), sched.Events...)
	broken.Events[2].Time, broken.Events[4].Time = broken.Events[4].Time, broken.Events[2].Time
	if broken.Monotonic() {
		t.Error("schedule with swapped times should not be monotonic")
	}
}
