package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fixworks/repairdesk/internal/domain"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// TicketRepository encapsulates ticket persistence. Implementations must
// allocate unique strictly increasing ids, keep the status history append-only
// and apply AppendStatus atomically so the current-status projection never
// diverges from the last history entry.
type TicketRepository interface {
	// Create stores the ticket, assigning its id. The caller provides
	// CreatedAt, CreatedBy, CurrentStatus and the seed history entry.
	Create(ctx context.Context, ticket *domain.RepairTicket) error
	GetByID(ctx context.Context, id uint64) (*domain.RepairTicket, error)
	ListByCreator(ctx context.Context, creator domain.Principal) ([]domain.RepairTicket, error)
	ListAll(ctx context.Context) ([]domain.RepairTicket, error)
	// AppendStatus appends the entry, sets the projection to entry.Status,
	// overwrites TechnicianNotes when entry.Notes is set and PriceEstimate
	// when price is set, all in one atomic step. Returns the updated ticket.
	AppendStatus(ctx context.Context, id uint64, entry domain.StatusLogEntry, price *float64) (*domain.RepairTicket, error)
}

// memoryTicketRepository is the single in-process store: one mutex guards the
// id counter and the ticket map, so id allocation and per-ticket mutation are
// serialized and reads see consistent snapshots.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	nextID  uint64
	tickets map[uint64]*domain.RepairTicket
}

// NewMemoryTicketRepository builds an empty in-memory store.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{
		nextID:  1,
		tickets: make(map[uint64]*domain.RepairTicket),
	}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.RepairTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = ticket.Clone()
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id uint64) (*domain.RepairTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ticket.Clone(), nil
}

func (r *memoryTicketRepository) ListByCreator(_ context.Context, creator domain.Principal) ([]domain.RepairTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.RepairTicket, 0)
	for _, ticket := range r.tickets {
		if ticket.CreatedBy == creator {
			result = append(result, *ticket.Clone())
		}
	}
	sortByID(result)
	return result, nil
}

func (r *memoryTicketRepository) ListAll(_ context.Context) ([]domain.RepairTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.RepairTicket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		result = append(result, *ticket.Clone())
	}
	sortByID(result)
	return result, nil
}

func (r *memoryTicketRepository) AppendStatus(_ context.Context, id uint64, entry domain.StatusLogEntry, price *float64) (*domain.RepairTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}

	ticket.StatusHistory = append(ticket.StatusHistory, entry)
	ticket.CurrentStatus = entry.Status
	if entry.Notes != nil {
		notes := *entry.Notes
		ticket.TechnicianNotes = &notes
	}
	if price != nil {
		estimate := *price
		ticket.PriceEstimate = &estimate
	}
	return ticket.Clone(), nil
}

func sortByID(tickets []domain.RepairTicket) {
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ID < tickets[j].ID
	})
}
