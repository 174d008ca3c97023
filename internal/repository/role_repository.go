package repository

import (
	"context"
	"sync"

	"github.com/fixworks/repairdesk/internal/domain"
)

// RoleRepository stores the principal → role mapping. Last write wins; no
// history is retained for role changes.
type RoleRepository interface {
	// Get returns the assigned role, or ok=false when no assignment exists.
	Get(ctx context.Context, principal domain.Principal) (domain.Role, bool, error)
	// Set inserts or overwrites the role for the principal.
	Set(ctx context.Context, principal domain.Principal, role domain.Role) error
}

type memoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[domain.Principal]domain.Role
}

// NewMemoryRoleRepository builds an empty in-memory role mapping.
func NewMemoryRoleRepository() RoleRepository {
	return &memoryRoleRepository{roles: make(map[domain.Principal]domain.Role)}
}

func (r *memoryRoleRepository) Get(_ context.Context, principal domain.Principal) (domain.Role, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[principal]
	return role, ok, nil
}

func (r *memoryRoleRepository) Set(_ context.Context, principal domain.Principal, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[principal] = role
	return nil
}
