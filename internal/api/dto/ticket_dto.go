package dto

import "github.com/fixworks/repairdesk/internal/domain"

// CreateTicketRequest payload. All five fields are required.
type CreateTicketRequest struct {
	CustomerName     string `json:"customer_name"`
	ContactInfo      string `json:"contact_info"`
	DeviceBrand      string `json:"device_brand"`
	DeviceModel      string `json:"device_model"`
	IssueDescription string `json:"issue_description"`
}

// CreateTicketResponse returns the allocated id.
type CreateTicketResponse struct {
	ID uint64 `json:"id"`
}

// UpdateStatusRequest payload for staff status transitions.
type UpdateStatusRequest struct {
	NewStatus     domain.TicketStatus `json:"new_status"`
	Notes         *string             `json:"notes,omitempty"`
	PriceEstimate *float64            `json:"price_estimate,omitempty"`
}

// StatusLogResponse is one immutable audit trail entry. Timestamps are
// nanoseconds since the Unix epoch; consumers convert for display.
type StatusLogResponse struct {
	Status    domain.TicketStatus `json:"status"`
	Notes     *string             `json:"notes,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID               uint64              `json:"id"`
	CustomerName     string              `json:"customer_name"`
	ContactInfo      string              `json:"contact_info"`
	DeviceBrand      string              `json:"device_brand"`
	DeviceModel      string              `json:"device_model"`
	IssueDescription string              `json:"issue_description"`
	TechnicianNotes  *string             `json:"technician_notes,omitempty"`
	PriceEstimate    *float64            `json:"price_estimate,omitempty"`
	CreatedAt        int64               `json:"created_at"`
	CreatedBy        string              `json:"created_by"`
	CurrentStatus    domain.TicketStatus `json:"current_status"`
	StatusHistory    []StatusLogResponse `json:"status_history"`
}

// FromTicket maps the aggregate to its response shape.
func FromTicket(ticket *domain.RepairTicket) TicketResponse {
	history := make([]StatusLogResponse, 0, len(ticket.StatusHistory))
	for _, entry := range ticket.StatusHistory {
		history = append(history, StatusLogResponse{
			Status:    entry.Status,
			Notes:     entry.Notes,
			Timestamp: entry.Timestamp.UnixNano(),
		})
	}
	return TicketResponse{
		ID:               ticket.ID,
		CustomerName:     ticket.CustomerName,
		ContactInfo:      ticket.ContactInfo,
		DeviceBrand:      ticket.DeviceBrand,
		DeviceModel:      ticket.DeviceModel,
		IssueDescription: ticket.IssueDescription,
		TechnicianNotes:  ticket.TechnicianNotes,
		PriceEstimate:    ticket.PriceEstimate,
		CreatedAt:        ticket.CreatedAt.UnixNano(),
		CreatedBy:        string(ticket.CreatedBy),
		CurrentStatus:    ticket.CurrentStatus,
		StatusHistory:    history,
	}
}

// FromTickets maps a ticket list.
func FromTickets(tickets []domain.RepairTicket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, FromTicket(&tickets[i]))
	}
	return items
}
