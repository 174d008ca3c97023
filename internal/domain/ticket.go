package domain

import "time"

// TicketStatus enumerates lifecycle states for repair tickets.
type TicketStatus string

const (
	TicketStatusNew             TicketStatus = "new"
	TicketStatusInProgress      TicketStatus = "inProgress"
	TicketStatusWaitingForParts TicketStatus = "waitingForParts"
	TicketStatusReady           TicketStatus = "ready"
	TicketStatusClosed          TicketStatus = "closed"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusWaitingForParts,
		TicketStatusReady, TicketStatusClosed:
		return true
	}
	return false
}

// StatusLogEntry is an immutable audit trail entry. Once appended to a
// ticket's history it is never edited or removed.
type StatusLogEntry struct {
	Status    TicketStatus
	Notes     *string
	Timestamp time.Time
}

// RepairTicket is the aggregate for repair requests. The five descriptive
// fields are set once at creation; TechnicianNotes and PriceEstimate hold
// the latest staff-written values; CurrentStatus always equals the status of
// the last StatusHistory entry.
type RepairTicket struct {
	ID               uint64
	CustomerName     string
	ContactInfo      string
	DeviceBrand      string
	DeviceModel      string
	IssueDescription string
	TechnicianNotes  *string
	PriceEstimate    *float64
	CreatedAt        time.Time
	CreatedBy        Principal
	CurrentStatus    TicketStatus
	StatusHistory    []StatusLogEntry
}

// LastStatus returns the status of the most recent history entry.
func (t *RepairTicket) LastStatus() TicketStatus {
	if len(t.StatusHistory) == 0 {
		return ""
	}
	return t.StatusHistory[len(t.StatusHistory)-1].Status
}

// Clone returns a deep copy safe to hand to callers while the store keeps
// mutating the original.
func (t *RepairTicket) Clone() *RepairTicket {
	copied := *t
	copied.StatusHistory = make([]StatusLogEntry, len(t.StatusHistory))
	copy(copied.StatusHistory, t.StatusHistory)
	if t.TechnicianNotes != nil {
		notes := *t.TechnicianNotes
		copied.TechnicianNotes = &notes
	}
	if t.PriceEstimate != nil {
		price := *t.PriceEstimate
		copied.PriceEstimate = &price
	}
	return &copied
}
