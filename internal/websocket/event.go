package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeFunded   EventType = "funded"
	EventTypePaid     EventType = "paid"
	EventTypeCleared  EventType = "cleared"
	EventTypeExceeded EventType = "exceeded"
	EventTypeUpcoming EventType = "upcoming"
	EventTypeReset    EventType = "reset"
	EventTypeImported EventType = "imported"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeAccount     EntityType = "account"
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeGoal        EntityType = "goal"
	EntityTypeBudget      EntityType = "budget"
	EntityTypeBill        EntityType = "bill"
	EntityTypeDocument    EntityType = "document"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "transaction"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// BudgetExceeded creates a budget.exceeded event
func BudgetExceeded(payload interface{}) Event {
	return NewEvent(EventTypeExceeded, EntityTypeBudget, payload)
}

// BillsUpcoming creates a bill.upcoming event
func BillsUpcoming(payload interface{}) Event {
	return NewEvent(EventTypeUpcoming, EntityTypeBill, payload)
}

// DocumentReset creates a document.reset event
func DocumentReset() Event {
	return NewEvent(EventTypeReset, EntityTypeDocument, nil)
}

// DocumentImported creates a document.imported event
func DocumentImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeDocument, payload)
}
