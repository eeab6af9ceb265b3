// Package event defines the review domain events dispatched after status
// transitions.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies a domain event.
type Type string

const (
	// TypeBillAccepted fires after a reviewer accepts a bill.
	TypeBillAccepted Type = "bill.accepted"

	// TypeBillRefused fires after a reviewer refuses a bill.
	TypeBillRefused Type = "bill.refused"

	// TypeBillUpdated fires after any successful store update.
	TypeBillUpdated Type = "bill.updated"
)

// Event represents a review domain event.
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	BillID    string                 `json:"bill_id"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates a domain event with a generated ID and timestamp.
func NewEvent(eventType Type, billID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		BillID:    billID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// GetPayloadString retrieves a string value from the payload.
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
