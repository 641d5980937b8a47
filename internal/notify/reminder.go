package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// reminderIcon is the icon path shown with every reminder.
const reminderIcon = "/icons/adhan.svg"

// Reminder is one user-visible alert tied to a prayer event's arrival.
type Reminder struct {
	ID       string           `json:"id"`
	Kind     prayer.EventKind `json:"kind"`
	Title    string           `json:"title"`
	Body     string           `json:"body"`
	Icon     string           `json:"icon"`
	Location string           `json:"location"`
	Time     prayer.ClockTime `json:"time"`
	FiredAt  time.Time        `json:"fired_at"`

	// Test marks reminders from the test-delivery path, which bypasses the
	// minute tick and the per-day dedup.
	Test bool `json:"test,omitempty"`
}

// NewReminder builds the reminder for a prayer event at the given location.
// Titles and bodies use the Indonesian display labels.
func NewReminder(ev prayer.DailyEvent, loc prayer.Location, firedAt time.Time) Reminder {
	label := ev.Kind.Label()
	return Reminder{
		ID:       uuid.New().String(),
		Kind:     ev.Kind,
		Title:    "Waktu " + label,
		Body:     fmt.Sprintf("Sekarang waktu %s untuk wilayah %s", label, loc.Label),
		Icon:     reminderIcon,
		Location: loc.Label,
		Time:     ev.Time,
		FiredAt:  firedAt,
	}
}

// NewTestReminder builds the reminder used to verify delivery works,
// independent of the minute-tick path.
func NewTestReminder(loc prayer.Location, firedAt time.Time) Reminder {
	return Reminder{
		ID:       uuid.New().String(),
		Kind:     prayer.KindDhuhr,
		Title:    "Notifikasi Percobaan",
		Body:     fmt.Sprintf("Notifikasi adzan berfungsi untuk wilayah %s", loc.Label),
		Icon:     reminderIcon,
		Location: loc.Label,
		Time:     prayer.ClockTimeOf(firedAt),
		FiredAt:  firedAt,
		Test:     true,
	}
}

// Sink presents reminders to the user. Show returns an opaque handle that
// Close uses to dismiss the reminder early (or after the display duration).
type Sink interface {
	Show(ctx context.Context, r Reminder) (handle string, err error)
	Close(handle string) error
}

// Recorder persists fired reminders so dedup survives a same-day restart.
// Implementations must treat (day, kind) as unique.
type Recorder interface {
	// Fired returns the kinds already fired on the given calendar day.
	Fired(ctx context.Context, day time.Time) ([]prayer.EventKind, error)

	// Record stores a delivered (or attempted) reminder.
	Record(ctx context.Context, r Reminder) error
}

// Deliver shows a reminder on the sink and schedules its auto-dismiss.
//
// Parameters:
//   - ctx: Context for the sink call
//   - sink: Delivery sink
//   - r: The reminder to present
//   - displayFor: How long the reminder stays visible; 0 disables auto-dismiss
//
// Returns:
//   - error: ErrDeliveryFailed (wrapped) if the sink rejects the reminder
func Deliver(ctx context.Context, sink Sink, r Reminder, displayFor time.Duration) error {
	if sink == nil {
		return ErrNoSink
	}

	handle, err := sink.Show(ctx, r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if handle != "" && displayFor > 0 {
		time.AfterFunc(displayFor, func() {
			// Best effort: the reminder may already be gone.
			_ = sink.Close(handle)
		})
	}

	return nil
}
