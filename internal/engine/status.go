package engine

import (
	"encoding/json"

	"github.com/fajrlabs/adhan-core/internal/infrastructure/mqtt"
	"github.com/fajrlabs/adhan-core/internal/prayer"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// State is the engine's coarse readiness condition.
type State string

const (
	// StateLoading means the first fetch (or a post-SetLocation fetch) has
	// not settled yet.
	StateLoading State = "loading"

	// StateReady means a schedule is loaded. It may be yesterday's if the
	// last refetch failed; the schedule date tells.
	StateReady State = "ready"

	// StateUnavailable means fetching failed with nothing older to fall
	// back on.
	StateUnavailable State = "schedule_unavailable"
)

// Status is a snapshot of the engine's presentable state.
type Status struct {
	State        State               `json:"state"`
	Location     prayer.Location     `json:"location"`
	ScheduleDate string              `json:"schedule_date,omitempty"`
	Subscription subscription.Status `json:"subscription"`
}

// statePublishQoS is the QoS for retained state snapshots.
const statePublishQoS = 1

// publishState pushes retained snapshots of the live state to the panel
// topics. Best effort: a down broker only costs a debug line, and the
// retained flag means a reconnecting panel catches up anyway.
func (e *Engine) publishState() {
	if e.statePub == nil || !e.statePub.IsConnected() {
		return
	}

	topics := mqtt.Topics{}

	e.mu.RLock()
	loc := e.location
	schedule := e.schedule
	sub := e.machine.Status()
	e.mu.RUnlock()

	e.publishJSON(topics.LocationState(), loc)
	e.publishJSON(topics.SubscriptionState(), sub)

	if schedule != nil {
		e.publishJSON(topics.ScheduleToday(), schedule)
		e.publishJSON(topics.ScheduleNext(), schedule.NextEvent(prayer.ClockTimeOf(e.now())))
	}
}

// publishJSON marshals and publishes one retained snapshot.
func (e *Engine) publishJSON(topic string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		e.logger.Error("marshalling state snapshot", "topic", topic, "error", err)
		return
	}
	if err := e.statePub.Publish(topic, payload, statePublishQoS, true); err != nil {
		e.logger.Debug("publishing state snapshot", "topic", topic, "error", err)
	}
}
