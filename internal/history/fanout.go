package history

import (
	"context"
	"time"

	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// ReminderWriter mirrors deliveries to a time-series store. The shipped
// implementation is the InfluxDB client.
type ReminderWriter interface {
	WriteReminder(kind, location string, test bool)
}

// FanoutRecorder wraps a primary recorder and mirrors every recorded
// delivery to a time-series writer. Dedup reads (Fired) go only to the
// primary; the mirror is write-only and best-effort.
type FanoutRecorder struct {
	primary notify.Recorder
	writer  ReminderWriter
}

// NewFanoutRecorder combines a primary recorder with a time-series
// mirror. A nil writer degrades to the primary alone.
func NewFanoutRecorder(primary notify.Recorder, writer ReminderWriter) *FanoutRecorder {
	return &FanoutRecorder{primary: primary, writer: writer}
}

// Fired delegates to the primary recorder.
func (f *FanoutRecorder) Fired(ctx context.Context, day time.Time) ([]prayer.EventKind, error) {
	return f.primary.Fired(ctx, day)
}

// Record stores the delivery in the primary recorder and mirrors it to
// the time-series writer. The mirror write is non-blocking and its
// failures never surface here.
func (f *FanoutRecorder) Record(ctx context.Context, r notify.Reminder) error {
	err := f.primary.Record(ctx, r)

	if f.writer != nil {
		kind := r.Kind.String()
		if r.Test {
			kind = "Test"
		}
		f.writer.WriteReminder(kind, r.Location, r.Test)
	}

	return err
}
