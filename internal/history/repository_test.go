package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fajrlabs/adhan-core/internal/infrastructure/database"
	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/prayer"

	_ "github.com/fajrlabs/adhan-core/migrations" // registers embedded migrations
)

// openTestRepo creates a migrated temporary database.
func openTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return NewRepository(db)
}

func reminderAt(t *testing.T, kind prayer.EventKind, firedAt time.Time) notify.Reminder {
	t.Helper()
	return notify.NewReminder(
		prayer.DailyEvent{Kind: kind, Time: prayer.ClockTimeOf(firedAt)},
		prayer.DefaultLocation(),
		firedAt,
	)
}

func TestRecordAndFired(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	if err := repo.Record(ctx, reminderAt(t, prayer.KindDhuhr, day)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, reminderAt(t, prayer.KindAsr, day.Add(3*time.Hour))); err != nil {
		t.Fatalf("Record: %v", err)
	}

	kinds, err := repo.Fired(ctx, day)
	if err != nil {
		t.Fatalf("Fired: %v", err)
	}
	if len(kinds) != 2 {
		t.Fatalf("fired = %v, want 2 kinds", kinds)
	}

	// A different day has no entries.
	kinds, err = repo.Fired(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Fired: %v", err)
	}
	if len(kinds) != 0 {
		t.Errorf("next day fired = %v, want none", kinds)
	}
}

func TestRecord_DuplicateDayKind(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 18, 5, 0, 0, time.Local)

	if err := repo.Record(ctx, reminderAt(t, prayer.KindMaghrib, day)); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	err := repo.Record(ctx, reminderAt(t, prayer.KindMaghrib, day.Add(time.Minute)))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("second Record: got %v, want ErrDuplicate", err)
	}
}

func TestRecord_TestRemindersExemptFromDedup(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		r := notify.NewTestReminder(prayer.DefaultLocation(), now.Add(time.Duration(i)*time.Minute))
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("test reminder %d: %v", i, err)
		}
	}

	// Test deliveries never seed the dedup set.
	kinds, err := repo.Fired(ctx, now)
	if err != nil {
		t.Fatalf("Fired: %v", err)
	}
	if len(kinds) != 0 {
		t.Errorf("fired = %v, want none (test reminders excluded)", kinds)
	}
}

func TestListRecent(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 4, 30, 0, 0, time.Local)

	order := []prayer.EventKind{prayer.KindFajr, prayer.KindDhuhr, prayer.KindAsr}
	for i, kind := range order {
		if err := repo.Record(ctx, reminderAt(t, kind, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Kind != prayer.KindAsr || entries[1].Kind != prayer.KindDhuhr {
		t.Errorf("order = %v, %v", entries[0].Kind, entries[1].Kind)
	}
	if entries[0].Location != "Jakarta" {
		t.Errorf("location = %q", entries[0].Location)
	}
}

// ─── Fanout ──────────────────────────────────────────────────────────────────

type mockWriter struct {
	calls []string
}

func (w *mockWriter) WriteReminder(kind, _ string, _ bool) {
	w.calls = append(w.calls, kind)
}

func TestFanoutRecorder(t *testing.T) {
	repo := openTestRepo(t)
	writer := &mockWriter{}
	rec := NewFanoutRecorder(repo, writer)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 18, 5, 0, 0, time.Local)

	if err := rec.Record(ctx, reminderAt(t, prayer.KindMaghrib, now)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Record(ctx, notify.NewTestReminder(prayer.DefaultLocation(), now)); err != nil {
		t.Fatalf("Record test: %v", err)
	}

	if len(writer.calls) != 2 || writer.calls[0] != "Maghrib" || writer.calls[1] != "Test" {
		t.Errorf("writer calls = %v", writer.calls)
	}

	kinds, err := rec.Fired(ctx, now)
	if err != nil {
		t.Fatalf("Fired: %v", err)
	}
	if len(kinds) != 1 || kinds[0] != prayer.KindMaghrib {
		t.Errorf("fired = %v", kinds)
	}
}

func TestFanoutRecorder_NilWriter(t *testing.T) {
	repo := openTestRepo(t)
	rec := NewFanoutRecorder(repo, nil)

	now := time.Date(2026, 3, 10, 19, 20, 0, 0, time.Local)
	if err := rec.Record(context.Background(), reminderAt(t, prayer.KindIsha, now)); err != nil {
		t.Fatalf("Record: %v", err)
	}
}
