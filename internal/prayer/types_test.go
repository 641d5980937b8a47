package prayer

import (
	"errors"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ClockTime
		wantErr bool
	}{
		{name: "plain", input: "04:30", want: ClockTime{4, 30}},
		{name: "timezone suffix", input: "18:05 (WIB)", want: ClockTime{18, 5}},
		{name: "midnight", input: "00:00", want: ClockTime{0, 0}},
		{name: "end of day", input: "23:59", want: ClockTime{23, 59}},
		{name: "leading whitespace", input: " 12:00", want: ClockTime{12, 0}},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "negative hour", input: "-1:30", wantErr: true},
		{name: "no separator", input: "1230", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClockTime) {
					t.Errorf("expected ErrInvalidClockTime, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClockTime(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClockTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockTime_Comparisons(t *testing.T) {
	a := ClockTime{12, 0}
	b := ClockTime{12, 1}

	if !b.After(a) {
		t.Error("12:01 should be after 12:00")
	}
	if a.After(b) {
		t.Error("12:00 should not be after 12:01")
	}
	if a.After(a) {
		t.Error("a time is not after itself")
	}
	if !a.Equal(ClockTime{12, 0}) {
		t.Error("equal times should compare equal")
	}
}

func TestClockTimeOf_TruncatesSeconds(t *testing.T) {
	instant := time.Date(2026, 3, 12, 4, 30, 59, 999, time.UTC)
	got := ClockTimeOf(instant)
	if got != (ClockTime{4, 30}) {
		t.Errorf("ClockTimeOf = %v, want 04:30", got)
	}
}

func TestClockTime_String(t *testing.T) {
	if s := (ClockTime{4, 5}).String(); s != "04:05" {
		t.Errorf("String() = %q, want %q", s, "04:05")
	}
}

func TestEventKind_Ordering(t *testing.T) {
	kinds := AllKinds()
	if len(kinds) != 6 {
		t.Fatalf("expected 6 kinds, got %d", len(kinds))
	}
	want := []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}
	for i, k := range kinds {
		if k.String() != want[i] {
			t.Errorf("kind[%d] = %q, want %q", i, k.String(), want[i])
		}
	}
}

func TestEventKind_Notifiable(t *testing.T) {
	for _, k := range AllKinds() {
		want := k != KindSunrise
		if k.Notifiable() != want {
			t.Errorf("%s.Notifiable() = %v, want %v", k, k.Notifiable(), want)
		}
	}
}

func TestEventKind_Label(t *testing.T) {
	tests := map[EventKind]string{
		KindFajr:    "Subuh",
		KindSunrise: "Terbit",
		KindDhuhr:   "Dzuhur",
		KindAsr:     "Ashar",
		KindMaghrib: "Maghrib",
		KindIsha:    "Isya",
	}
	for kind, want := range tests {
		if got := kind.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", kind, got, want)
		}
	}
}

func TestKindFromName(t *testing.T) {
	if k, ok := KindFromName("Maghrib"); !ok || k != KindMaghrib {
		t.Errorf("KindFromName(Maghrib) = %v, %v", k, ok)
	}
	if _, ok := KindFromName("Imsak"); ok {
		t.Error("Imsak is not an event kind")
	}
}

func TestDefaultLocation(t *testing.T) {
	loc := DefaultLocation()
	if loc.Label != "Jakarta" {
		t.Errorf("label = %q, want Jakarta", loc.Label)
	}
	if loc.Latitude != -6.2088 || loc.Longitude != 106.8456 {
		t.Errorf("coordinates = %v,%v, want -6.2088,106.8456", loc.Latitude, loc.Longitude)
	}
}
