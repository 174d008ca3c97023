package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/domain"
	"github.com/fixworks/repairdesk/internal/events"
	"github.com/fixworks/repairdesk/internal/repository"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle: creation, the status
// transition engine and the role-gated query surface.
type TicketService struct {
	tickets         repository.TicketRepository
	roles           *RoleService
	dispatcher      events.Dispatcher
	openTicketReads bool
	now             func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Roles      *RoleService
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload. All fields are
// required and immutable after creation.
type TicketCreateInput struct {
	CustomerName     string
	ContactInfo      string
	DeviceBrand      string
	DeviceModel      string
	IssueDescription string
}

// StatusUpdateInput describes a status transition. Notes, when set, become
// both the immutable log entry copy and the ticket's latest technician notes;
// PriceEstimate, when set, overwrites the ticket's estimate.
type StatusUpdateInput struct {
	NewStatus     domain.TicketStatus
	Notes         *string
	PriceEstimate *float64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies, policy config.PolicyConfig) *TicketService {
	return &TicketService{
		tickets:         deps.TicketRepo,
		roles:           deps.Roles,
		dispatcher:      deps.Dispatcher,
		openTicketReads: policy.OpenTicketReads,
		now:             time.Now,
	}
}

// Create registers a new ticket for an authenticated caller and returns its
// id. Authorization and validation run before id allocation, so a rejected
// call consumes no id.
func (s *TicketService) Create(ctx context.Context, caller domain.Principal, input TicketCreateInput) (uint64, error) {
	role, err := s.roles.GetRole(ctx, caller)
	if err != nil {
		return 0, err
	}
	if caller.IsAnonymous() || role == domain.RoleGuest {
		return 0, apperrors.NewForbidden("authenticated caller required")
	}
	if err := validateCreateInput(input); err != nil {
		return 0, err
	}

	createdAt := s.now()
	ticket := &domain.RepairTicket{
		CustomerName:     strings.TrimSpace(input.CustomerName),
		ContactInfo:      strings.TrimSpace(input.ContactInfo),
		DeviceBrand:      strings.TrimSpace(input.DeviceBrand),
		DeviceModel:      strings.TrimSpace(input.DeviceModel),
		IssueDescription: strings.TrimSpace(input.IssueDescription),
		CreatedAt:        createdAt,
		CreatedBy:        caller,
		CurrentStatus:    domain.TicketStatusNew,
		StatusHistory: []domain.StatusLogEntry{
			{Status: domain.TicketStatusNew, Timestamp: createdAt},
		},
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return 0, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventTicketCreated,
		Actor: caller,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			CustomerName: ticket.CustomerName,
			DeviceBrand:  ticket.DeviceBrand,
			DeviceModel:  ticket.DeviceModel,
		},
	})
	return ticket.ID, nil
}

// UpdateStatus appends a status log entry and updates the current-status
// projection atomically. Admin only; the ticket is resolved first so a
// missing ticket reports NotFound even to non-admins. Any status may follow
// any other: the workflow ordering is staff convention, not a machine rule.
func (s *TicketService) UpdateStatus(ctx context.Context, caller domain.Principal, ticketID uint64, input StatusUpdateInput) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return mapTicketError(err, ticketID)
	}

	isAdmin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidStatus(input.NewStatus) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": input.NewStatus})
	}

	entry := domain.StatusLogEntry{
		Status:    input.NewStatus,
		Notes:     input.Notes,
		Timestamp: s.now(),
	}
	updated, err := s.tickets.AppendStatus(ctx, ticketID, entry, input.PriceEstimate)
	if err != nil {
		return mapTicketError(err, ticketID)
	}

	s.publish(ctx, events.Event{
		Type:  events.EventTicketStatusChanged,
		Actor: caller,
		Payload: events.TicketStatusChangedPayload{
			TicketID:      updated.ID,
			OldStatus:     ticket.CurrentStatus,
			NewStatus:     input.NewStatus,
			Notes:         input.Notes,
			PriceEstimate: input.PriceEstimate,
		},
	})
	return nil
}

// GetMine lists the caller's own tickets in creation order.
func (s *TicketService) GetMine(ctx context.Context, caller domain.Principal) ([]domain.RepairTicket, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.NewForbidden("authenticated caller required")
	}
	tickets, err := s.tickets.ListByCreator(ctx, caller)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetAll lists every ticket. Admin only.
func (s *TicketService) GetAll(ctx context.Context, caller domain.Principal) ([]domain.RepairTicket, error) {
	isAdmin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetOne fetches a single ticket. A missing ticket reports NotFound before
// any authorization check. Reads are owner-or-admin unless open ticket reads
// are enabled, in which case any authenticated caller may read by id.
func (s *TicketService) GetOne(ctx context.Context, caller domain.Principal, ticketID uint64) (*domain.RepairTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}

	if caller.IsAnonymous() {
		return nil, apperrors.NewForbidden("authenticated caller required")
	}
	if s.openTicketReads || ticket.CreatedBy == caller {
		return ticket, nil
	}
	isAdmin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.NewForbidden("owner or admin required")
	}
	return ticket, nil
}

func validateCreateInput(input TicketCreateInput) error {
	missing := make([]string, 0, 5)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"customerName", input.CustomerName},
		{"contactInfo", input.ContactInfo},
		{"deviceBrand", input.DeviceBrand},
		{"deviceModel", input.DeviceModel},
		{"issueDescription", input.IssueDescription},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("required fields missing", map[string]any{"fields": missing})
	}
	return nil
}

func mapTicketError(err error, ticketID uint64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return apperrors.MapError(err)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
