package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []TicketStatus{
		TicketStatusNew, TicketStatusInProgress, TicketStatusWaitingForParts,
		TicketStatusReady, TicketStatusClosed,
	} {
		assert.True(t, ValidStatus(status))
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestCloneIsDeep(t *testing.T) {
	notes := "cracked hinge"
	price := 42.5
	ticket := &RepairTicket{
		ID:              3,
		TechnicianNotes: &notes,
		PriceEstimate:   &price,
		CurrentStatus:   TicketStatusInProgress,
		StatusHistory: []StatusLogEntry{
			{Status: TicketStatusNew, Timestamp: time.Now()},
			{Status: TicketStatusInProgress, Timestamp: time.Now()},
		},
	}

	clone := ticket.Clone()
	clone.StatusHistory[0].Status = TicketStatusClosed
	*clone.TechnicianNotes = "changed"
	*clone.PriceEstimate = 0

	assert.Equal(t, TicketStatusNew, ticket.StatusHistory[0].Status)
	assert.Equal(t, "cracked hinge", *ticket.TechnicianNotes)
	assert.Equal(t, 42.5, *ticket.PriceEstimate)
}
