package events

import (
	"context"
	"time"
)

const (
	TypeActionItemsGenerated = "ACTION_ITEMS_GENERATED"
	TypeClustersApplied      = "RETRO_CLUSTERS_APPLIED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ACTION_ITEMS_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to whatever bus is configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Envelope is the wire body of a published event.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

func NewEnvelope(e Event) Envelope {
	return Envelope{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp().UTC().Format(time.RFC3339),
	}
}
