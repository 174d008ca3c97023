package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/domain"
)

func TestMemoryRoleMapping(t *testing.T) {
	repo := NewMemoryRoleRepository()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "p1", domain.RoleAdmin))
	role, ok, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, role)

	require.NoError(t, repo.Set(ctx, "p1", domain.RoleUser))
	role, ok, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleUser, role)
}
