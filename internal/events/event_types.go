package events

import (
	"time"

	"github.com/fixworks/repairdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventRoleAssigned        EventType = "role_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	Actor     domain.Principal `json:"actor"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID     uint64 `json:"ticket_id"`
	CustomerName string `json:"customer_name"`
	DeviceBrand  string `json:"device_brand"`
	DeviceModel  string `json:"device_model"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID      uint64              `json:"ticket_id"`
	OldStatus     domain.TicketStatus `json:"old_status"`
	NewStatus     domain.TicketStatus `json:"new_status"`
	Notes         *string             `json:"notes,omitempty"`
	PriceEstimate *float64            `json:"price_estimate,omitempty"`
}

// RoleAssignedPayload payload.
type RoleAssignedPayload struct {
	Target domain.Principal `json:"target"`
	Role   domain.Role      `json:"role"`
}
