package engine

import (
	"context"
	"sync"
	"time"

	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/prayer"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// DefaultRefreshInterval is how often the engine re-checks the calendar
// date and the host permission. One minute keeps date rollover within a
// minute of midnight without meaningful load.
const DefaultRefreshInterval = time.Minute

// Provider supplies prayer times for a date and location.
// The AlAdhan client is the production implementation.
type Provider interface {
	Timings(ctx context.Context, date time.Time, loc prayer.Location) (*prayer.DailySchedule, error)
	Calendar(ctx context.Context, year int, month time.Month, loc prayer.Location) (*prayer.MonthlyCalendar, error)
}

// LocationResolver produces the best-effort current location.
// Resolve never fails: the resolver falls back internally.
type LocationResolver interface {
	Resolve(ctx context.Context) prayer.Location
}

// Geocoder labels manually supplied coordinates with a city name.
type Geocoder interface {
	CityName(ctx context.Context, latitude, longitude float64) (string, error)
}

// FetchWriter mirrors provider fetch outcomes to a time-series store.
// The InfluxDB client is the production implementation.
type FetchWriter interface {
	WriteFetch(endpoint string, ok bool, elapsed time.Duration)
}

// Logger defines the logging interface used by the Engine.
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

// Options configures an Engine.
type Options struct {
	// Provider fetches schedules and calendars. Required.
	Provider Provider

	// Sink presents reminders. Required.
	Sink notify.Sink

	// Resolver produces the startup location. Optional: without one the
	// engine stays on the fixed fallback.
	Resolver LocationResolver

	// Geocoder labels coordinates passed to SetLocation. Optional.
	Geocoder Geocoder

	// Machine is the subscription state machine. Optional: a nil machine is
	// replaced with one bound to no host (terminal unsupported state).
	Machine *subscription.Machine

	// Recorder persists fired reminders for restart dedup. Optional.
	Recorder notify.Recorder

	// StatePublisher receives retained state snapshots for panels. Optional.
	StatePublisher notify.Publisher

	// FetchWriter receives provider fetch outcomes. Optional.
	FetchWriter FetchWriter

	// Logger for diagnostics. Optional.
	Logger Logger

	// RefreshInterval overrides DefaultRefreshInterval (tests use short ones).
	RefreshInterval time.Duration

	// TickInterval and DisplayDuration are passed through to the notifier.
	TickInterval    time.Duration
	DisplayDuration time.Duration

	// Now overrides the wall clock (tests only).
	Now func() time.Time
}

// Engine owns the live prayer-time state and its background refresh.
type Engine struct {
	provider Provider
	sink     notify.Sink
	resolver LocationResolver
	geocoder Geocoder
	machine  *subscription.Machine
	recorder notify.Recorder
	statePub notify.Publisher
	fetchW   FetchWriter
	logger   Logger

	refreshInterval time.Duration
	tickInterval    time.Duration
	displayFor      time.Duration
	now             func() time.Time

	// mu guards the mutable prayer-time state.
	mu       sync.RWMutex
	location prayer.Location
	schedule *prayer.DailySchedule
	calendar *prayer.MonthlyCalendar
	state    State

	// notifyMu guards the notifier instance, which is replaced wholesale
	// whenever the schedule or location changes.
	notifyMu sync.Mutex
	notifier *notify.Notifier

	// runMu guards the lifecycle fields.
	runMu   sync.Mutex
	running bool
	loopCtx context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an engine from the given options.
//
// Returns:
//   - *Engine: Ready to Start
//   - error: ErrNoProvider or notify.ErrNoSink when a required
//     collaborator is missing
func New(opts Options) (*Engine, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.Sink == nil {
		return nil, notify.ErrNoSink
	}

	e := &Engine{
		provider:        opts.Provider,
		sink:            opts.Sink,
		resolver:        opts.Resolver,
		geocoder:        opts.Geocoder,
		machine:         opts.Machine,
		recorder:        opts.Recorder,
		statePub:        opts.StatePublisher,
		fetchW:          opts.FetchWriter,
		logger:          opts.Logger,
		refreshInterval: opts.RefreshInterval,
		tickInterval:    opts.TickInterval,
		displayFor:      opts.DisplayDuration,
		now:             opts.Now,
		location:        prayer.DefaultLocation(),
		state:           StateLoading,
	}
	if e.machine == nil {
		e.machine = subscription.NewMachine(context.Background(), nil)
	}
	if e.logger == nil {
		e.logger = noopLogger{}
	}
	if e.refreshInterval <= 0 {
		e.refreshInterval = DefaultRefreshInterval
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Start launches the engine's background loop.
//
// The fallback location is live immediately; the real location and the
// first schedule fetch settle asynchronously. Status reports loading until
// then.
//
// Returns:
//   - error: ErrAlreadyStarted if the loop is already live
func (e *Engine) Start(ctx context.Context) error {
	e.runMu.Lock()
	if e.running {
		e.runMu.Unlock()
		return ErrAlreadyStarted
	}
	e.running = true
	e.loopCtx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	loopCtx := e.loopCtx
	done := e.done
	e.runMu.Unlock()

	go func() {
		defer close(done)
		e.bootstrap(loopCtx)
		e.run(loopCtx)
	}()

	e.logger.Info("engine started", "refresh_interval", e.refreshInterval)
	return nil
}

// Close stops the background loop and the notifier. Safe to call on a
// stopped engine, and safe to call more than once.
func (e *Engine) Close() {
	e.runMu.Lock()
	if !e.running {
		e.runMu.Unlock()
		return
	}
	e.running = false
	cancel := e.cancel
	done := e.done
	e.runMu.Unlock()

	cancel()
	<-done
	e.stopNotifier()
	e.logger.Info("engine stopped")
}

// bootstrap resolves the startup location and performs the first fetch.
func (e *Engine) bootstrap(ctx context.Context) {
	if e.resolver != nil {
		loc := e.resolver.Resolve(ctx)
		e.mu.Lock()
		e.location = loc
		e.mu.Unlock()
		e.logger.Info("location resolved",
			"label", loc.Label,
			"latitude", loc.Latitude,
			"longitude", loc.Longitude,
		)
	}

	if err := e.fetch(ctx); err != nil {
		e.logger.Warn("initial schedule fetch failed", "error", err)
	}
}

// run is the refresh loop. It exits only on context cancellation.
func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(e.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.refresh(ctx)
		}
	}
}

// refresh re-reads the host permission and refetches when the calendar
// day has rolled over.
func (e *Engine) refresh(ctx context.Context) {
	st := e.machine.Refresh(ctx)
	if !st.Armed {
		// A revoked permission disarms the machine; the notifier must
		// follow.
		e.disarmNotifier()
	}

	e.mu.RLock()
	schedule := e.schedule
	e.mu.RUnlock()

	now := e.now()
	if schedule == nil || !prayer.SameDate(schedule.Date, now) {
		if err := e.fetch(ctx); err != nil {
			e.logger.Warn("schedule refresh failed", "error", err)
		}
	}
}

// fetch retrieves the schedule (and calendar) for today at the current
// location. On failure the previous data stays live; only the state flag
// changes when there was nothing to keep.
func (e *Engine) fetch(ctx context.Context) error {
	e.mu.RLock()
	loc := e.location
	e.mu.RUnlock()

	now := e.now()

	started := time.Now()
	sched, err := e.provider.Timings(ctx, now, loc)
	e.writeFetch("timings", err == nil, time.Since(started))
	if err != nil {
		e.mu.Lock()
		if e.schedule == nil {
			e.state = StateUnavailable
		}
		e.mu.Unlock()
		e.publishState()
		return err
	}

	// Calendar failure is non-fatal: the daily schedule carries the UI and
	// the previous calendar (if any) stays live.
	started = time.Now()
	cal, calErr := e.provider.Calendar(ctx, now.Year(), now.Month(), loc)
	e.writeFetch("calendar", calErr == nil, time.Since(started))
	if calErr != nil {
		e.logger.Warn("calendar fetch failed", "error", calErr)
	}

	e.mu.Lock()
	e.schedule = sched
	if cal != nil {
		e.calendar = cal
	}
	e.state = StateReady
	e.mu.Unlock()

	e.logger.Info("schedule loaded",
		"date", sched.Date.Format("2006-01-02"),
		"location", loc.Label,
	)

	if e.machine.Armed() {
		e.restartNotifier()
	}
	e.publishState()
	return nil
}

// SetLocation replaces the live location with explicit coordinates.
//
// The old schedule and calendar are invalidated and the notifier stopped
// before the new fetch, so no consumer reads times for the wrong place.
// The label is resolved via the geocoder when one is configured.
//
// Returns:
//   - error: ErrInvalidCoordinates, or the fetch error (the engine stays
//     in the loading/unavailable state until a later refresh succeeds)
func (e *Engine) SetLocation(ctx context.Context, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return ErrInvalidCoordinates
	}

	label := prayer.PlaceholderLabel
	if e.geocoder != nil {
		if name, err := e.geocoder.CityName(ctx, latitude, longitude); err == nil && name != "" {
			label = name
		} else if err != nil {
			e.logger.Warn("reverse geocoding failed", "error", err)
		}
	}

	e.stopNotifier()

	e.mu.Lock()
	e.location = prayer.Location{Latitude: latitude, Longitude: longitude, Label: label}
	e.schedule = nil
	e.calendar = nil
	e.state = StateLoading
	e.mu.Unlock()

	e.logger.Info("location replaced", "label", label,
		"latitude", latitude, "longitude", longitude)

	return e.fetch(ctx)
}

// ToggleSubscription flips the reminder subscription, driving the host
// permission prompt when needed, and starts or stops the notifier to
// match the resulting armed state.
//
// Returns:
//   - subscription.Status: the state after the transition
//   - error: subscription.ErrPermissionDenied, subscription.ErrUnsupported,
//     or a wrapped host error
func (e *Engine) ToggleSubscription(ctx context.Context) (subscription.Status, error) {
	st, err := e.machine.Toggle(ctx)

	if st.Armed {
		e.restartNotifier()
	} else {
		e.disarmNotifier()
	}

	e.publishState()
	return st, err
}

// SendTestReminder delivers a test reminder immediately, bypassing the
// minute tick and the per-day dedup. Requires granted permission; the
// subscription does not need to be armed.
//
// Returns:
//   - error: subscription.ErrUnsupported, subscription.ErrPermissionDenied,
//     or a delivery error from the sink
func (e *Engine) SendTestReminder(ctx context.Context) error {
	switch e.machine.Status().Permission {
	case subscription.PermissionGranted:
	case subscription.PermissionUnsupported:
		return subscription.ErrUnsupported
	default:
		return subscription.ErrPermissionDenied
	}

	e.mu.RLock()
	loc := e.location
	e.mu.RUnlock()

	r := notify.NewTestReminder(loc, e.now())
	if err := notify.Deliver(ctx, e.sink, r, e.displayFor); err != nil {
		return err
	}

	e.logger.Info("test reminder delivered", "location", loc.Label)

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, r); err != nil {
			e.logger.Warn("recording test reminder", "error", err)
		}
	}
	return nil
}

// NextEvent returns the single upcoming event for today.
//
// Returns:
//   - prayer.DailyEvent: the next event (wrapping to tomorrow's first
//     after the last has passed)
//   - error: prayer.ErrNoSchedule while no schedule is loaded
func (e *Engine) NextEvent() (prayer.DailyEvent, error) {
	e.mu.RLock()
	schedule := e.schedule
	e.mu.RUnlock()

	if schedule == nil {
		return prayer.DailyEvent{}, prayer.ErrNoSchedule
	}
	return schedule.NextEvent(prayer.ClockTimeOf(e.now())), nil
}

// TodayImsak returns today's pre-dawn cutoff from the monthly calendar.
//
// Returns:
//   - prayer.ClockTime: today's cutoff, or day 1's when today is outside
//     the calendar month
//   - error: prayer.ErrNoSchedule while no calendar is loaded
func (e *Engine) TodayImsak() (prayer.ClockTime, error) {
	e.mu.RLock()
	calendar := e.calendar
	e.mu.RUnlock()

	if calendar == nil {
		return prayer.ClockTime{}, prayer.ErrNoSchedule
	}
	return calendar.Cutoff(e.now())
}

// Schedule returns the live daily schedule, or nil while loading.
// The returned schedule is immutable.
func (e *Engine) Schedule() *prayer.DailySchedule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.schedule
}

// Calendar returns the live monthly calendar, or nil when none is loaded.
func (e *Engine) Calendar() *prayer.MonthlyCalendar {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.calendar
}

// Location returns the live location.
func (e *Engine) Location() prayer.Location {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.location
}

// Subscription returns the subscription machine's status snapshot.
func (e *Engine) Subscription() subscription.Status {
	return e.machine.Status()
}

// Status returns a full snapshot of the engine's presentable state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	st := Status{
		State:        e.state,
		Location:     e.location,
		Subscription: e.machine.Status(),
	}
	if e.schedule != nil {
		st.ScheduleDate = e.schedule.Date.Format("2006-01-02")
	}
	e.mu.RUnlock()
	return st
}

// restartNotifier replaces the running notifier with one bound to the
// current schedule and location. A nil schedule leaves reminders off until
// the next successful fetch, which calls back in here.
func (e *Engine) restartNotifier() {
	e.mu.RLock()
	schedule := e.schedule
	loc := e.location
	e.mu.RUnlock()

	if schedule == nil {
		e.logger.Warn("reminders armed before schedule load, deferring notifier")
		return
	}

	e.runMu.Lock()
	ctx := e.loopCtx
	e.runMu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	n, err := notify.New(notify.Options{
		Schedule:        schedule,
		Location:        loc,
		Sink:            e.sink,
		Recorder:        e.recorder,
		Logger:          e.logger,
		Interval:        e.tickInterval,
		DisplayDuration: e.displayFor,
		Now:             e.now,
	})
	if err != nil {
		e.logger.Error("building notifier", "error", err)
		return
	}

	// The whole stop-old/start-new sequence runs under notifyMu so two
	// concurrent swaps cannot leave a started notifier unreferenced. The
	// notifier never calls back into the engine, so holding the lock
	// across Stop (which waits for the tick loop) cannot deadlock.
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if e.notifier != nil {
		e.notifier.Stop()
		e.notifier = nil
	}

	// A concurrent disarm may have landed between the caller's armed
	// check and here; starting now would outlive it.
	if !e.machine.Armed() {
		return
	}

	if err := n.Start(ctx); err != nil {
		e.logger.Error("starting notifier", "error", err)
		return
	}
	e.notifier = n
}

// writeFetch mirrors a fetch outcome to the time-series writer, if any.
func (e *Engine) writeFetch(endpoint string, ok bool, elapsed time.Duration) {
	if e.fetchW != nil {
		e.fetchW.WriteFetch(endpoint, ok, elapsed)
	}
}

// stopNotifier stops and drops the current notifier, if any. Stop runs
// under notifyMu so it serialises with a concurrent restart.
func (e *Engine) stopNotifier() {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if e.notifier != nil {
		e.notifier.Stop()
		e.notifier = nil
	}
}

// disarmNotifier stops the notifier only if the machine is still disarmed
// when the lock is held: a toggle that re-armed after the caller observed
// the disarm keeps its notifier.
func (e *Engine) disarmNotifier() {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if e.machine.Armed() {
		return
	}
	if e.notifier != nil {
		e.notifier.Stop()
		e.notifier = nil
	}
}
