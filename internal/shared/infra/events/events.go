// Package events carries entity lifecycle notifications out of the
// services. Publishing is best-effort: a failed publish is logged by the
// caller and never fails the parent operation.
package events

import (
	"context"
	"time"
)

// Event is a lifecycle notification such as "campaign.created".
type Event struct {
	Type       string      `json:"type"`
	Entity     string      `json:"entity"`
	EntityID   string      `json:"entity_id"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// PartitionKey keeps all events of one entity on the same partition.
func (e Event) PartitionKey() string { return e.Entity + ":" + e.EntityID }

// Publisher is the port services publish through.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// New builds a lifecycle event stamped with the current time.
func New(entity, eventType, id string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		Entity:     entity,
		EntityID:   id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
