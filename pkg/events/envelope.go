package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType doubles as the AMQP routing key.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
)

const envelopeVersion = 1

// Envelope is the stable wire structure published to the exchange.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	EventType  EventType       `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// OrderCreated is the payload of order.created.
type OrderCreated struct {
	OrderID      uuid.UUID `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Source       string    `json:"source"`
	LineItems    int       `json:"lineItems"`
}

// OrderStatusChanged is the payload of order.status_changed.
type OrderStatusChanged struct {
	OrderID        uuid.UUID `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
}

// OrderDeleted is the payload of order.deleted.
type OrderDeleted struct {
	OrderID uuid.UUID `json:"orderId"`
}

// NewEnvelope wraps data with a fresh event id.
func NewEnvelope(eventType EventType, occurredAt time.Time, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: occurredAt.UTC(),
		Data:       raw,
	}, nil
}
