// Package notifications publishes save outcomes to ntfy.
//
// NewService returns a noop when no topic is configured, so callers never
// branch on whether notifications are enabled. Per-event toggles in the
// [notifications] config section suppress success or failure messages;
// the test event is always delivered.
package notifications
