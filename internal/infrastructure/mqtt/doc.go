// Package mqtt provides MQTT client connectivity for the daemon.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// MQTT is the delivery channel between the daemon and wall-mounted panels.
// Reminders are published to adhan/reminder/show, schedule state is retained
// on adhan/schedule/+, and the system status topic announces liveness.
//
//	Daemon ↔ MQTT Broker ↔ Panels
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff with configurable bounds
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Publish a reminder
//	topic := mqtt.Topics{}.ReminderShow()
//	client.Publish(topic, payload, 1, false)
//
//	// Listen for test reminder requests from panels
//	err = client.Subscribe(mqtt.Topics{}.ReminderTest(), 1,
//	    func(topic string, payload []byte) error {
//	        return engine.SendTestReminder(context.Background())
//	    })
package mqtt
