package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fajrlabs/adhan-core/internal/infrastructure/database"
	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// dayFormat is the calendar-day key stored in fired_on.
const dayFormat = "2006-01-02"

// Entry is one recorded reminder delivery.
type Entry struct {
	ID       string           `json:"id"`
	FiredOn  string           `json:"fired_on"`
	Kind     prayer.EventKind `json:"kind"`
	Time     string           `json:"time"`
	Location string           `json:"location"`
	FiredAt  time.Time        `json:"fired_at"`
	Test     bool             `json:"test"`
}

// Repository stores reminder deliveries in SQLite. It implements
// notify.Recorder.
type Repository struct {
	db *database.DB
}

// NewRepository creates a reminder history repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Fired returns the event kinds already delivered on the given calendar
// day, excluding test reminders.
func (r *Repository) Fired(ctx context.Context, day time.Time) ([]prayer.EventKind, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT event_kind FROM reminder_log WHERE fired_on = ? AND is_test = 0",
		day.Format(dayFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("querying fired reminders: %w", err)
	}
	defer rows.Close()

	var kinds []prayer.EventKind
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning fired reminder: %w", err)
		}
		kind, ok := prayer.KindFromName(name)
		if !ok {
			// Unknown kinds are skipped rather than failing the whole
			// seed: the notifier will at worst re-fire one event.
			continue
		}
		kinds = append(kinds, kind)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fired reminders: %w", err)
	}
	return kinds, nil
}

// Record stores one delivered reminder.
//
// Scheduled reminders hit the UNIQUE (fired_on, event_kind) index; a
// second record for the same day and kind returns ErrDuplicate. Test
// reminders are exempt and always insert.
func (r *Repository) Record(ctx context.Context, rem notify.Reminder) error {
	isTest := 0
	if rem.Test {
		isTest = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_log (id, fired_on, event_kind, event_time, location_label, fired_at, is_test)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rem.ID,
		rem.FiredAt.Format(dayFormat),
		rem.Kind.String(),
		rem.Time.String(),
		rem.Location,
		rem.FiredAt.UTC().Format(time.RFC3339),
		isTest,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s on %s", ErrDuplicate, rem.Kind, rem.FiredAt.Format(dayFormat))
		}
		return fmt.Errorf("recording reminder: %w", err)
	}
	return nil
}

// ListRecent returns the most recent deliveries, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fired_on, event_kind, event_time, location_label, fired_at, is_test
		FROM reminder_log
		ORDER BY fired_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying reminder history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kindName, firedAt string
		var isTest int
		if err := rows.Scan(&e.ID, &e.FiredOn, &kindName, &e.Time, &e.Location, &firedAt, &isTest); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if kind, ok := prayer.KindFromName(kindName); ok {
			e.Kind = kind
		}
		e.FiredAt, _ = time.Parse(time.RFC3339, firedAt) //nolint:errcheck // Format is controlled
		e.Test = isTest != 0
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. Matched on the message to avoid depending on driver error
// codes across go-sqlite3 versions.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
