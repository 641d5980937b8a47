package notify

import (
	"context"
	"sync"
	"time"

	"github.com/fajrlabs/adhan-core/internal/prayer"
)

// Timing defaults for the notifier.
const (
	// DefaultTickInterval is the wall-clock polling interval. One tick per
	// minute guarantees exactly one tick lands inside each matching minute
	// while the process runs continuously.
	DefaultTickInterval = time.Minute

	// DefaultDisplayDuration is how long a prayer reminder stays visible
	// before auto-dismiss.
	DefaultDisplayDuration = 30 * time.Second
)

// Logger defines the logging interface used by the Notifier.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures a Notifier.
type Options struct {
	// Schedule is the day's events. Required, non-empty, immutable for the
	// notifier's lifetime — replace the notifier when it changes.
	Schedule *prayer.DailySchedule

	// Location supplies the label embedded in reminder bodies.
	Location prayer.Location

	// Sink presents reminders. Required.
	Sink Sink

	// Recorder persists fired events for same-day restart dedup. Optional.
	Recorder Recorder

	// Logger for diagnostics. Optional.
	Logger Logger

	// Interval overrides DefaultTickInterval (tests use short intervals).
	Interval time.Duration

	// DisplayDuration overrides DefaultDisplayDuration.
	DisplayDuration time.Duration

	// Now overrides the wall clock (tests only).
	Now func() time.Time
}

// Notifier fires at most one reminder per event per calendar day by polling
// the wall clock at minute granularity.
//
// Thread Safety: Start, Stop and Running are safe for concurrent use.
type Notifier struct {
	schedule   *prayer.DailySchedule
	location   prayer.Location
	sink       Sink
	recorder   Recorder
	logger     Logger
	interval   time.Duration
	displayFor time.Duration
	now        func() time.Time

	mu       sync.Mutex
	fired    map[prayer.EventKind]struct{}
	firedDay string // YYYY-MM-DD of the fired set
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// dayFormat keys the per-day fired set.
const dayFormat = "2006-01-02"

// New creates a notifier for one schedule at one location.
//
// Returns:
//   - *Notifier: Ready to Start
//   - error: prayer.ErrNoSchedule if the schedule is missing or empty,
//     ErrNoSink if no sink is configured
func New(opts Options) (*Notifier, error) {
	if opts.Schedule == nil || len(opts.Schedule.Events) == 0 {
		return nil, prayer.ErrNoSchedule
	}
	if opts.Sink == nil {
		return nil, ErrNoSink
	}

	n := &Notifier{
		schedule:   opts.Schedule,
		location:   opts.Location,
		sink:       opts.Sink,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		interval:   opts.Interval,
		displayFor: opts.DisplayDuration,
		now:        opts.Now,
		fired:      make(map[prayer.EventKind]struct{}),
	}
	if n.logger == nil {
		n.logger = noopLogger{}
	}
	if n.interval <= 0 {
		n.interval = DefaultTickInterval
	}
	if n.displayFor == 0 {
		n.displayFor = DefaultDisplayDuration
	}
	if n.now == nil {
		n.now = time.Now
	}
	return n, nil
}

// Start launches the tick loop.
//
// The recorder (if any) seeds the fired set for today first, so a restart
// within the same day does not re-deliver. An immediate check runs before
// the first tick: arming during a matching minute still fires.
//
// Returns:
//   - error: ErrAlreadyRunning if the loop is already live
func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return ErrAlreadyRunning
	}
	n.running = true

	var loopCtx context.Context
	loopCtx, n.cancel = context.WithCancel(ctx)
	n.done = make(chan struct{})
	done := n.done
	n.mu.Unlock()

	n.seedFired(ctx)

	go func() {
		defer close(done)
		n.run(loopCtx)
	}()

	n.logger.Info("notifier started",
		"events", len(n.schedule.Events),
		"location", n.location.Label,
		"interval", n.interval,
	)
	return nil
}

// Stop cancels the tick loop and waits for it to exit.
// Safe to call on a stopped notifier.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	cancel := n.cancel
	done := n.done
	n.mu.Unlock()

	cancel()
	<-done
	n.logger.Info("notifier stopped")
}

// Running reports whether the tick loop is live.
func (n *Notifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running
}

// run is the tick loop. It exits only on context cancellation.
func (n *Notifier) run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	n.check(ctx, n.now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.check(ctx, n.now())
		}
	}
}

// seedFired loads today's already-fired kinds from the recorder.
func (n *Notifier) seedFired(ctx context.Context) {
	if n.recorder == nil {
		return
	}

	today := n.now()
	kinds, err := n.recorder.Fired(ctx, today)
	if err != nil {
		n.logger.Warn("loading fired reminders", "error", err)
		return
	}

	n.mu.Lock()
	n.firedDay = today.Format(dayFormat)
	for _, k := range kinds {
		n.fired[k] = struct{}{}
	}
	n.mu.Unlock()
}

// check compares the current minute against every notifiable event and
// delivers reminders for matches not yet fired today. Multiple events
// sharing a minute each fire independently.
func (n *Notifier) check(ctx context.Context, now time.Time) {
	minute := prayer.ClockTimeOf(now)
	day := now.Format(dayFormat)

	n.mu.Lock()
	if day != n.firedDay {
		// Calendar day rolled over: reset the dedup set.
		n.firedDay = day
		n.fired = make(map[prayer.EventKind]struct{})
	}

	var due []prayer.DailyEvent
	for _, ev := range n.schedule.Events {
		if !ev.Kind.Notifiable() {
			continue
		}
		if !ev.Time.Equal(minute) {
			continue
		}
		if _, already := n.fired[ev.Kind]; already {
			continue
		}
		// Mark before delivering: a flapping sink must not cause repeats.
		n.fired[ev.Kind] = struct{}{}
		due = append(due, ev)
	}
	n.mu.Unlock()

	for _, ev := range due {
		n.deliver(ctx, ev, now)
	}
}

// deliver fires one reminder and records it.
func (n *Notifier) deliver(ctx context.Context, ev prayer.DailyEvent, now time.Time) {
	r := NewReminder(ev, n.location, now)

	if err := Deliver(ctx, n.sink, r, n.displayFor); err != nil {
		n.logger.Error("reminder delivery failed",
			"kind", ev.Kind.String(),
			"time", ev.Time.String(),
			"error", err,
		)
		return
	}

	n.logger.Info("reminder fired",
		"kind", ev.Kind.String(),
		"time", ev.Time.String(),
		"location", n.location.Label,
	)

	if n.recorder != nil {
		if err := n.recorder.Record(ctx, r); err != nil {
			n.logger.Warn("recording reminder", "error", err)
		}
	}
}
