package events

import "time"

const NotificationRequestedTopic = "presence.notification.requested.v1"

const NotificationRequestedEventType = "notification_requested"

type NotificationRecipient struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// NotificationRequestedEvent is one fire-and-forget delivery request. The
// consumer owns templating and the actual send.
type NotificationRequestedEvent struct {
	EventType      string                  `json:"event_type"`
	NotificationID string                  `json:"notification_id"`
	Kind           string                  `json:"kind"`
	Recipients     []NotificationRecipient `json:"recipients"`
	Payload        map[string]string       `json:"payload"`
	RequestID      string                  `json:"request_id,omitempty"`
	OccurredAt     time.Time               `json:"occurred_at"`
}
