package subscription

import (
	"context"
	"fmt"
	"sync"
)

// Permission is the host-reported notification permission.
type Permission string

const (
	PermissionUnrequested Permission = "unrequested"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// Host is the interface to the platform's notification permission surface.
//
// Supported is probed once at machine construction; Current re-reads the
// host's stored permission (so a grant or denial from a previous run is
// picked up on startup); Request raises the host's permission prompt and
// may block until the user answers.
type Host interface {
	Supported() bool
	Current(ctx context.Context) (Permission, error)
	Request(ctx context.Context) (Permission, error)
}

// Status is a snapshot of the machine's state for presentation.
type Status struct {
	Permission Permission `json:"permission"`
	Armed      bool       `json:"armed"`
}

// Logger defines the logging interface used by the Machine.
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

// Machine holds the permission × armed state and enforces its transitions.
//
// Thread Safety: all methods are safe for concurrent use. Mutation is
// expected from a single writer (the engine); presentation only reads.
type Machine struct {
	mu         sync.RWMutex
	permission Permission
	armed      bool
	host       Host
	logger     Logger
}

// NewMachine creates a machine bound to the given host.
//
// The host's capability is probed exactly once here: a nil or unsupported
// host puts the machine in the terminal unsupported state. Otherwise the
// host's current permission is re-read so a previous run's grant or denial
// carries over. Armed always starts false — it is a per-session choice.
func NewMachine(ctx context.Context, host Host) *Machine {
	m := &Machine{host: host, logger: noopLogger{}}

	if host == nil || !host.Supported() {
		m.permission = PermissionUnsupported
		return m
	}

	current, err := host.Current(ctx)
	if err != nil || current == "" {
		current = PermissionUnrequested
	}
	m.permission = current
	return m
}

// SetLogger sets the logger for the machine.
func (m *Machine) SetLogger(logger Logger) {
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// Status returns a snapshot of the current state.
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{Permission: m.permission, Armed: m.armed}
}

// Armed reports whether reminders are currently armed.
// True implies permission is granted.
func (m *Machine) Armed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.armed
}

// Granted reports whether the host permission is granted.
func (m *Machine) Granted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.permission == PermissionGranted
}

// Toggle flips the user's reminder choice.
//
// Transitions:
//   - armed → unarm, no host round-trip
//   - unarmed, granted → arm immediately, no host round-trip
//   - unarmed, unrequested → request from host; grant arms, denial records
//     the sticky denied state and returns ErrPermissionDenied
//   - unarmed, denied → rejected with ErrPermissionDenied, no re-prompt
//   - unarmed, unsupported → rejected with ErrUnsupported
//
// Returns:
//   - Status: the state after the transition (or rejected attempt)
//   - error: nil, ErrPermissionDenied, ErrUnsupported, or a wrapped host error
func (m *Machine) Toggle(ctx context.Context) (Status, error) {
	m.mu.Lock()

	if m.armed {
		m.armed = false
		st := m.statusLocked()
		m.logger.Info("reminders disarmed")
		m.mu.Unlock()
		return st, nil
	}

	switch m.permission {
	case PermissionGranted:
		m.armed = true
		st := m.statusLocked()
		m.logger.Info("reminders armed")
		m.mu.Unlock()
		return st, nil

	case PermissionDenied:
		st := m.statusLocked()
		m.mu.Unlock()
		return st, ErrPermissionDenied

	case PermissionUnsupported:
		st := m.statusLocked()
		m.mu.Unlock()
		return st, ErrUnsupported
	}

	// Unrequested: ask the host. The prompt may block on user input, so the
	// lock is released for the round-trip; armed stays false throughout, so
	// no invalid state is observable.
	host := m.host
	m.mu.Unlock()

	result, err := host.Request(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		return m.statusLocked(), fmt.Errorf("requesting notification permission: %w", err)
	}

	m.applyPermissionLocked(result)
	if m.permission == PermissionGranted {
		m.armed = true
		m.logger.Info("permission granted, reminders armed")
		return m.statusLocked(), nil
	}

	m.logger.Warn("notification permission denied")
	return m.statusLocked(), ErrPermissionDenied
}

// Refresh re-reads the host's current permission and applies it.
// A transition away from granted disarms.
func (m *Machine) Refresh(ctx context.Context) Status {
	m.mu.RLock()
	host := m.host
	unsupported := m.permission == PermissionUnsupported
	m.mu.RUnlock()

	if unsupported || host == nil {
		return m.Status()
	}

	current, err := host.Current(ctx)
	if err != nil || current == "" {
		return m.Status()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyPermissionLocked(current)
	return m.statusLocked()
}

// applyPermissionLocked records a permission value, disarming whenever the
// new value is anything other than granted. Callers must hold mu.
func (m *Machine) applyPermissionLocked(p Permission) {
	m.permission = p
	if p != PermissionGranted {
		m.armed = false
	}
}

// statusLocked builds a Status snapshot. Callers must hold mu (read or write).
func (m *Machine) statusLocked() Status {
	return Status{Permission: m.permission, Armed: m.armed}
}
