package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/domain"
	"github.com/fixworks/repairdesk/internal/events"
	"github.com/fixworks/repairdesk/internal/repository"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// RoleService answers role queries and performs admin-only role assignment.
type RoleService struct {
	roles       repository.RoleRepository
	dispatcher  events.Dispatcher
	defaultRole domain.Role
}

// NewRoleService builds the service and seeds bootstrap admins. Without a
// seeded admin no caller could ever assign roles.
func NewRoleService(ctx context.Context, roles repository.RoleRepository, dispatcher events.Dispatcher, policy config.PolicyConfig) (*RoleService, error) {
	svc := &RoleService{
		roles:       roles,
		dispatcher:  dispatcher,
		defaultRole: policy.DefaultRole,
	}
	for _, principal := range policy.BootstrapAdmins {
		if err := roles.Set(ctx, principal, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// GetRole returns the caller's role. Unauthenticated callers are guests;
// authenticated principals without an assignment get the configured default.
func (s *RoleService) GetRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	if principal.IsAnonymous() {
		return domain.RoleGuest, nil
	}
	role, ok, err := s.roles.Get(ctx, principal)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if !ok {
		return s.defaultRole, nil
	}
	return role, nil
}

// IsAdmin reports whether the caller holds the admin role.
func (s *RoleService) IsAdmin(ctx context.Context, principal domain.Principal) (bool, error) {
	role, err := s.GetRole(ctx, principal)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// AssignRole overwrites the target's role mapping. Admin only; no state
// changes on failure.
func (s *RoleService) AssignRole(ctx context.Context, caller, target domain.Principal, role domain.Role) error {
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	isAdmin, err := s.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.roles.Set(ctx, target, role); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventRoleAssigned,
		Actor: caller,
		Payload: events.RoleAssignedPayload{
			Target: target,
			Role:   role,
		},
	})
	return nil
}

func (s *RoleService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
