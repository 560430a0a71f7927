package events

import (
	"time"

	"github.com/gemline/repair-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRepairCreated       EventType = "repair_created"
	EventRepairStatusChanged EventType = "repair_status_changed"
	EventRepairDeleted       EventType = "repair_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RepairID  string      `json:"repair_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RepairCreatedPayload payload.
type RepairCreatedPayload struct {
	CustomerID   *string             `json:"customer_id,omitempty"`
	ReturnMethod domain.ReturnMethod `json:"return_method"`
	ItemCount    int                 `json:"item_count"`
}

// RepairStatusChangedPayload payload.
type RepairStatusChangedPayload struct {
	OldStatus domain.RepairStatus `json:"old_status"`
	NewStatus domain.RepairStatus `json:"new_status"`
}
