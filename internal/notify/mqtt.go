package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fajrlabs/adhan-core/internal/infrastructure/mqtt"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// MQTT topics for reminder presentation, derived from the shared topic
// builders so the topic names have a single source. Wall-panel shells
// subscribe to show and act on dismiss.
var (
	TopicReminderShow    = mqtt.Topics{}.ReminderShow()
	TopicReminderDismiss = mqtt.Topics{}.ReminderDismiss()
)

// Publisher is the narrow slice of the MQTT client the sink needs.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	IsConnected() bool
}

// MQTTSink delivers reminders by publishing them on the MQTT bus.
//
// Show publishes the full reminder JSON on TopicReminderShow and returns the
// reminder ID as the dismiss handle. Close publishes the ID on
// TopicReminderDismiss so shells can drop the card early.
type MQTTSink struct {
	pub Publisher
	qos byte
}

// NewMQTTSink creates a sink over an MQTT publisher. QoS 1 gives
// at-least-once delivery to subscribed shells.
func NewMQTTSink(pub Publisher) *MQTTSink {
	return &MQTTSink{pub: pub, qos: 1}
}

// Show publishes the reminder and returns its ID as the dismiss handle.
func (s *MQTTSink) Show(_ context.Context, r Reminder) (string, error) {
	if s.pub == nil || !s.pub.IsConnected() {
		return "", fmt.Errorf("notify: mqtt sink not connected")
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("notify: encoding reminder: %w", err)
	}

	if err := s.pub.Publish(TopicReminderShow, payload, s.qos, false); err != nil {
		return "", fmt.Errorf("notify: publishing reminder: %w", err)
	}

	return r.ID, nil
}

// Close publishes a dismiss message for the given reminder handle.
func (s *MQTTSink) Close(handle string) error {
	if s.pub == nil || !s.pub.IsConnected() {
		return fmt.Errorf("notify: mqtt sink not connected")
	}

	payload, err := json.Marshal(map[string]string{"id": handle})
	if err != nil {
		return fmt.Errorf("notify: encoding dismiss: %w", err)
	}

	if err := s.pub.Publish(TopicReminderDismiss, payload, s.qos, false); err != nil {
		return fmt.Errorf("notify: publishing dismiss: %w", err)
	}

	return nil
}

// MQTTHost maps broker connectivity onto the subscription permission model.
//
// A headless deployment has no per-user permission dialog; what can actually
// block delivery is the bus. The mapping keeps the state machine honest:
// no publisher means unsupported, a live connection means granted, and a
// configured-but-down broker reports unrequested until Request is asked to
// commit, at which point a dead connection becomes a denial.
type MQTTHost struct {
	pub Publisher
}

// NewMQTTHost creates a permission host backed by MQTT connectivity.
func NewMQTTHost(pub Publisher) *MQTTHost {
	return &MQTTHost{pub: pub}
}

// Supported reports whether a publisher is configured at all.
func (h *MQTTHost) Supported() bool {
	return h.pub != nil
}

// Current reports the permission implied by the connection state.
func (h *MQTTHost) Current(_ context.Context) (subscription.Permission, error) {
	if h.pub == nil {
		return subscription.PermissionUnsupported, nil
	}
	if h.pub.IsConnected() {
		return subscription.PermissionGranted, nil
	}
	return subscription.PermissionUnrequested, nil
}

// Request resolves the permission decisively: connected grants, anything
// else denies.
func (h *MQTTHost) Request(_ context.Context) (subscription.Permission, error) {
	if h.pub == nil {
		return subscription.PermissionUnsupported, nil
	}
	if h.pub.IsConnected() {
		return subscription.PermissionGranted, nil
	}
	return subscription.PermissionDenied, nil
}
