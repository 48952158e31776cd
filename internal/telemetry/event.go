// Package telemetry defines the telemetry event type and emitters used by the
// HTTP server. Events flow server → Kafka → worker → Loki.
package telemetry

import "time"

// Event is one telemetry event, serialized as JSON onto the Kafka topic.
type Event struct {
	AccountID string            `json:"accountId,omitempty"`
	EventType string            `json:"eventType"`
	Source    string            `json:"source"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewEvent returns an Event stamped with the current time.
func NewEvent(accountID, eventType string, metadata map[string]string) *Event {
	return &Event{
		AccountID: accountID,
		EventType: eventType,
		Source:    "notes-api",
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}
