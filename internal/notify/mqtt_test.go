package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fajrlabs/adhan-core/internal/prayer"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// mockPublisher captures MQTT publishes.
type mockPublisher struct {
	mu        sync.Mutex
	connected bool
	published []publishedMsg
	pubErr    error
}

type publishedMsg struct {
	topic   string
	payload []byte
	qos     byte
}

func (p *mockPublisher) Publish(topic string, payload []byte, qos byte, _ bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pubErr != nil {
		return p.pubErr
	}
	p.published = append(p.published, publishedMsg{topic: topic, payload: payload, qos: qos})
	return nil
}

func (p *mockPublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func TestMQTTSink_ShowPublishesReminder(t *testing.T) {
	pub := &mockPublisher{connected: true}
	sink := NewMQTTSink(pub)

	r := NewReminder(
		prayer.DailyEvent{Kind: prayer.KindMaghrib, Time: prayer.ClockTime{Hour: 18, Minute: 5}},
		prayer.Location{Label: "Jakarta"},
		time.Now(),
	)

	handle, err := sink.Show(context.Background(), r)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if handle != r.ID {
		t.Errorf("handle = %q, want reminder ID %q", handle, r.ID)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	msg := pub.published[0]
	if msg.topic != TopicReminderShow {
		t.Errorf("topic = %q, want %q", msg.topic, TopicReminderShow)
	}
	if msg.qos != 1 {
		t.Errorf("qos = %d, want 1", msg.qos)
	}

	var decoded Reminder
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if decoded.Title != "Waktu Maghrib" || decoded.Location != "Jakarta" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestMQTTSink_ClosePublishesDismiss(t *testing.T) {
	pub := &mockPublisher{connected: true}
	sink := NewMQTTSink(pub)

	if err := sink.Close("reminder-123"); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	if pub.published[0].topic != TopicReminderDismiss {
		t.Errorf("topic = %q, want %q", pub.published[0].topic, TopicReminderDismiss)
	}

	var dismiss map[string]string
	if err := json.Unmarshal(pub.published[0].payload, &dismiss); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if dismiss["id"] != "reminder-123" {
		t.Errorf("dismiss id = %q", dismiss["id"])
	}
}

func TestMQTTSink_Disconnected(t *testing.T) {
	sink := NewMQTTSink(&mockPublisher{connected: false})

	r := NewTestReminder(prayer.DefaultLocation(), time.Now())
	if _, err := sink.Show(context.Background(), r); err == nil {
		t.Error("expected error when disconnected")
	}
	if err := sink.Close("x"); err == nil {
		t.Error("expected error when disconnected")
	}
}

func TestMQTTSink_PublishError(t *testing.T) {
	pub := &mockPublisher{connected: true, pubErr: errors.New("broker rejected")}
	sink := NewMQTTSink(pub)

	r := NewTestReminder(prayer.DefaultLocation(), time.Now())
	if _, err := sink.Show(context.Background(), r); err == nil {
		t.Error("expected publish error to propagate")
	}
}

func TestMQTTHost_PermissionMapping(t *testing.T) {
	tests := []struct {
		name        string
		pub         Publisher
		supported   bool
		wantCurrent subscription.Permission
		wantRequest subscription.Permission
	}{
		{
			name:        "no publisher",
			pub:         nil,
			supported:   false,
			wantCurrent: subscription.PermissionUnsupported,
			wantRequest: subscription.PermissionUnsupported,
		},
		{
			name:        "connected",
			pub:         &mockPublisher{connected: true},
			supported:   true,
			wantCurrent: subscription.PermissionGranted,
			wantRequest: subscription.PermissionGranted,
		},
		{
			name:        "configured but down",
			pub:         &mockPublisher{connected: false},
			supported:   true,
			wantCurrent: subscription.PermissionUnrequested,
			wantRequest: subscription.PermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := NewMQTTHost(tt.pub)
			if host.Supported() != tt.supported {
				t.Errorf("Supported() = %v, want %v", host.Supported(), tt.supported)
			}
			cur, err := host.Current(context.Background())
			if err != nil || cur != tt.wantCurrent {
				t.Errorf("Current() = %q, %v, want %q", cur, err, tt.wantCurrent)
			}
			req, err := host.Request(context.Background())
			if err != nil || req != tt.wantRequest {
				t.Errorf("Request() = %q, %v, want %q", req, err, tt.wantRequest)
			}
		})
	}
}

// TestReminderTopicNames pins the panel-facing topic contract: shells
// subscribe to these exact strings.
func TestReminderTopicNames(t *testing.T) {
	if TopicReminderShow != "adhan/reminder/show" {
		t.Errorf("TopicReminderShow = %q, want adhan/reminder/show", TopicReminderShow)
	}
	if TopicReminderDismiss != "adhan/reminder/dismiss" {
		t.Errorf("TopicReminderDismiss = %q, want adhan/reminder/dismiss", TopicReminderDismiss)
	}
}
