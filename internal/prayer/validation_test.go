package prayer

import (
	"errors"
	"testing"
	"time"
)

func fullTimings() map[string]string {
	return map[string]string{
		"Fajr":    "04:30",
		"Sunrise": "05:45",
		"Dhuhr":   "12:00",
		"Asr":     "15:15",
		"Maghrib": "18:00",
		"Isha":    "19:15",
	}
}

func TestNewDailySchedule(t *testing.T) {
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	s, err := NewDailySchedule(date, fullTimings())
	if err != nil {
		t.Fatalf("NewDailySchedule: %v", err)
	}
	if len(s.Events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(s.Events))
	}
	for i, kind := range AllKinds() {
		if s.Events[i].Kind != kind {
			t.Errorf("event[%d].Kind = %s, want %s", i, s.Events[i].Kind, kind)
		}
	}
	if got := s.Event(KindMaghrib).Time; !got.Equal(ClockTime{18, 0}) {
		t.Errorf("Maghrib = %v, want 18:00", got)
	}
}

func TestNewDailySchedule_IgnoresExtraKeys(t *testing.T) {
	timings := fullTimings()
	timings["Imsak"] = "04:20"
	timings["Midnight"] = "00:03"

	s, err := NewDailySchedule(time.Now(), timings)
	if err != nil {
		t.Fatalf("NewDailySchedule: %v", err)
	}
	if len(s.Events) != 6 {
		t.Errorf("expected 6 events, got %d", len(s.Events))
	}
}

func TestNewDailySchedule_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{name: "missing fajr", mutate: func(m map[string]string) { delete(m, "Fajr") }},
		{name: "missing isha", mutate: func(m map[string]string) { delete(m, "Isha") }},
		{name: "unparseable time", mutate: func(m map[string]string) { m["Dhuhr"] = "noonish" }},
		{name: "out of range", mutate: func(m map[string]string) { m["Asr"] = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timings := fullTimings()
			tt.mutate(timings)

			_, err := NewDailySchedule(time.Now(), timings)
			if !errors.Is(err, ErrMalformedSchedule) {
				t.Errorf("expected ErrMalformedSchedule, got: %v", err)
			}
		})
	}
}

func calendarDay(y int, m time.Month, d int, imsak string) ImsakiyahDay {
	t, _ := ParseClockTime(imsak)
	return ImsakiyahDay{
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		DisplayDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("02 Jan 2006"),
		Imsak:       t,
		Fajr:        ClockTime{4, 30},
		Maghrib:     ClockTime{18, 0},
	}
}

func TestValidateCalendar(t *testing.T) {
	valid := &MonthlyCalendar{
		Year:  2026,
		Month: time.March,
		Days: []ImsakiyahDay{
			calendarDay(2026, time.March, 1, "04:20"),
			calendarDay(2026, time.March, 2, "04:20"),
			calendarDay(2026, time.March, 3, "04:21"),
		},
	}
	if err := ValidateCalendar(valid); err != nil {
		t.Errorf("valid calendar rejected: %v", err)
	}

	empty := &MonthlyCalendar{Year: 2026, Month: time.March}
	if err := ValidateCalendar(empty); !errors.Is(err, ErrMalformedSchedule) {
		t.Errorf("empty calendar: expected ErrMalformedSchedule, got %v", err)
	}

	dup := &MonthlyCalendar{
		Days: []ImsakiyahDay{
			calendarDay(2026, time.March, 1, "04:20"),
			calendarDay(2026, time.March, 1, "04:20"),
		},
	}
	if err := ValidateCalendar(dup); !errors.Is(err, ErrMalformedSchedule) {
		t.Errorf("duplicate dates: expected ErrMalformedSchedule, got %v", err)
	}

	unsorted := &MonthlyCalendar{
		Days: []ImsakiyahDay{
			calendarDay(2026, time.March, 2, "04:20"),
			calendarDay(2026, time.March, 1, "04:20"),
		},
	}
	if err := ValidateCalendar(unsorted); !errors.Is(err, ErrMalformedSchedule) {
		t.Errorf("unsorted dates: expected ErrMalformedSchedule, got %v", err)
	}
}
