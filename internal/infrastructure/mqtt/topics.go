package mqtt

import "fmt"

// Topic prefixes for the daemon's MQTT surface.
//
// All topics use the flat scheme: adhan/{category}/{action}
// This matches what the panel UI subscribes to.
const (
	// TopicPrefix is the base for all daemon topics.
	TopicPrefix = "adhan"

	// TopicPrefixReminder is the base for reminder delivery topics.
	TopicPrefixReminder = "adhan/reminder"

	// TopicPrefixSchedule is the base for schedule state topics.
	TopicPrefixSchedule = "adhan/schedule"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "adhan/system"
)

// Topics provides builders for the daemon's MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	showTopic := topics.ReminderShow()
//	// Returns: "adhan/reminder/show"
type Topics struct{}

// ReminderShow returns the topic for reminder display commands to the panel.
//
// Example: adhan/reminder/show
func (Topics) ReminderShow() string {
	return fmt.Sprintf("%s/show", TopicPrefixReminder)
}

// ReminderDismiss returns the topic for reminder dismissal commands.
//
// Example: adhan/reminder/dismiss
func (Topics) ReminderDismiss() string {
	return fmt.Sprintf("%s/dismiss", TopicPrefixReminder)
}

// ReminderTest returns the topic a panel publishes to request a test reminder.
//
// Example: adhan/reminder/test
func (Topics) ReminderTest() string {
	return fmt.Sprintf("%s/test", TopicPrefixReminder)
}

// ScheduleToday returns the retained topic carrying today's full schedule.
//
// Example: adhan/schedule/today
func (Topics) ScheduleToday() string {
	return fmt.Sprintf("%s/today", TopicPrefixSchedule)
}

// ScheduleNext returns the retained topic carrying the next upcoming event.
//
// Example: adhan/schedule/next
func (Topics) ScheduleNext() string {
	return fmt.Sprintf("%s/next", TopicPrefixSchedule)
}

// LocationState returns the retained topic carrying the resolved location.
//
// Example: adhan/location/state
func (Topics) LocationState() string {
	return fmt.Sprintf("%s/location/state", TopicPrefix)
}

// SubscriptionState returns the retained topic carrying the reminder
// subscription state (subscribed/unsubscribed and permission).
//
// Example: adhan/subscription/state
func (Topics) SubscriptionState() string {
	return fmt.Sprintf("%s/subscription/state", TopicPrefix)
}

// SystemStatus returns the system status topic used for online/offline
// announcements and the Last Will message.
//
// Example: adhan/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllReminders returns a pattern matching all reminder topics.
//
// Pattern: adhan/reminder/+
func (Topics) AllReminders() string {
	return fmt.Sprintf("%s/+", TopicPrefixReminder)
}

// AllTopics returns a pattern matching the daemon's entire topic surface.
// Use with caution - this receives ALL traffic.
//
// Pattern: adhan/#
func (Topics) AllTopics() string {
	return "adhan/#"
}
