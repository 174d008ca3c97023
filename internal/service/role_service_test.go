package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/domain"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

func TestGetRoleDefaults(t *testing.T) {
	f := newFixture(t, defaultPolicy())
	ctx := context.Background()

	role, err := f.roles.GetRole(ctx, domain.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, role)

	role, err = f.roles.GetRole(ctx, alicePrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	role, err = f.roles.GetRole(ctx, adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestGetRoleGuestDefaultPolicy(t *testing.T) {
	policy := defaultPolicy()
	policy.DefaultRole = domain.RoleGuest
	f := newFixture(t, policy)

	role, err := f.roles.GetRole(context.Background(), alicePrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, role)
}

func TestAssignRoleRequiresAdmin(t *testing.T) {
	f := newFixture(t, defaultPolicy())
	ctx := context.Background()

	err := f.roles.AssignRole(ctx, alicePrincipal, bobPrincipal, domain.RoleAdmin)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	// the failed call must not have mutated the mapping
	isAdmin, err := f.roles.IsAdmin(ctx, bobPrincipal)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, f.roles.AssignRole(ctx, adminPrincipal, bobPrincipal, domain.RoleAdmin))
	isAdmin, err = f.roles.IsAdmin(ctx, bobPrincipal)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	f := newFixture(t, defaultPolicy())

	err := f.roles.AssignRole(context.Background(), adminPrincipal, bobPrincipal, "owner")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAssignRoleLastWriteWins(t *testing.T) {
	f := newFixture(t, defaultPolicy())
	ctx := context.Background()

	require.NoError(t, f.roles.AssignRole(ctx, adminPrincipal, bobPrincipal, domain.RoleAdmin))
	require.NoError(t, f.roles.AssignRole(ctx, adminPrincipal, bobPrincipal, domain.RoleUser))

	role, err := f.roles.GetRole(ctx, bobPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}
