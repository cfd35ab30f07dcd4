// Package events publishes catalog domain events. Publishing is best effort:
// a failure is logged and never fails the request that produced the event.
package events

import (
	"context"
	"strconv"
	"sync"
	"time"
)

const (
	AddressCreated     = "address.created"
	AddressUpdated     = "address.updated"
	AddressDeleted     = "address.deleted"
	CityCreated        = "city.created"
	CategoryCreated    = "category.created"
	ProductSaleUpdated = "product_sale.updated"
	PermissionCreated  = "permission.created"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType string, entityID int64, payload any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) Key() string {
	return strconv.FormatInt(e.EntityID, 10)
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

func (Nop) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []string {
	events := r.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}
