package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/domain"
)

func newTicket(creator domain.Principal) *domain.RepairTicket {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.RepairTicket{
		CustomerName:     "Dana Reyes",
		ContactInfo:      "dana@example.com",
		DeviceBrand:      "Lenovo",
		DeviceModel:      "ThinkPad X1",
		IssueDescription: "does not power on",
		CreatedAt:        createdAt,
		CreatedBy:        creator,
		CurrentStatus:    domain.TicketStatusNew,
		StatusHistory: []domain.StatusLogEntry{
			{Status: domain.TicketStatusNew, Timestamp: createdAt},
		},
	}
}

func TestMemoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	for want := uint64(1); want <= 5; want++ {
		ticket := newTicket("p1")
		require.NoError(t, repo.Create(ctx, ticket))
		assert.Equal(t, want, ticket.ID)
	}
}

func TestMemoryCreateConcurrentIDsUnique(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	const n = 100
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket := newTicket("p1")
			if err := repo.Create(ctx, ticket); err == nil {
				ids <- ticket.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryGetReturnsIsolatedSnapshot(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := newTicket("p1")
	require.NoError(t, repo.Create(ctx, ticket))

	snapshot, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)

	// mutating the snapshot must not leak into the store
	snapshot.CurrentStatus = domain.TicketStatusClosed
	snapshot.StatusHistory[0].Status = domain.TicketStatusClosed

	fresh, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, fresh.CurrentStatus)
	assert.Equal(t, domain.TicketStatusNew, fresh.StatusHistory[0].Status)
}

func TestMemoryGetMissing(t *testing.T) {
	repo := NewMemoryTicketRepository()

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAppendStatusAtomic(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := newTicket("p1")
	require.NoError(t, repo.Create(ctx, ticket))

	notes := "ordered screen"
	price := 89.99
	updated, err := repo.AppendStatus(ctx, ticket.ID, domain.StatusLogEntry{
		Status:    domain.TicketStatusInProgress,
		Notes:     &notes,
		Timestamp: time.Now(),
	}, &price)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusInProgress, updated.CurrentStatus)
	assert.Equal(t, updated.CurrentStatus, updated.LastStatus())
	require.NotNil(t, updated.TechnicianNotes)
	assert.Equal(t, notes, *updated.TechnicianNotes)
	require.NotNil(t, updated.PriceEstimate)
	assert.Equal(t, price, *updated.PriceEstimate)
	assert.Len(t, updated.StatusHistory, 2)
}

func TestMemoryAppendStatusConcurrentLosesNothing(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := newTicket("p1")
	require.NoError(t, repo.Create(ctx, ticket))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendStatus(ctx, ticket.ID, domain.StatusLogEntry{
				Status:    domain.TicketStatusInProgress,
				Timestamp: time.Now(),
			}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, final.StatusHistory, n+1)
	assert.Equal(t, final.CurrentStatus, final.LastStatus())
}

func TestMemoryAppendStatusMissing(t *testing.T) {
	repo := NewMemoryTicketRepository()

	_, err := repo.AppendStatus(context.Background(), 7, domain.StatusLogEntry{
		Status:    domain.TicketStatusReady,
		Timestamp: time.Now(),
	}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListByCreator(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newTicket("alice")))
	}
	require.NoError(t, repo.Create(ctx, newTicket("bob")))

	mine, err := repo.ListByCreator(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for i := 1; i < len(mine); i++ {
		assert.Greater(t, mine[i].ID, mine[i-1].ID)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := repo.ListByCreator(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}
