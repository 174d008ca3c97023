package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "repairdesk", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, domain.RoleUser, cfg.Policy.DefaultRole)
	assert.False(t, cfg.Policy.OpenTicketReads)
	assert.Empty(t, cfg.Policy.BootstrapAdmins)
	assert.Equal(t, "repairdesk.activity", cfg.Redis.ActivityStream)
}

func TestLoadPolicyOverrides(t *testing.T) {
	t.Setenv("POLICY_DEFAULT_ROLE", "guest")
	t.Setenv("POLICY_OPEN_TICKET_READS", "true")
	t.Setenv("POLICY_BOOTSTRAP_ADMINS", "p-admin-1, p-admin-2 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.RoleGuest, cfg.Policy.DefaultRole)
	assert.True(t, cfg.Policy.OpenTicketReads)
	assert.Equal(t, []domain.Principal{"p-admin-1", "p-admin-2"}, cfg.Policy.BootstrapAdmins)
}

func TestLoadRejectsUnknownDefaultRole(t *testing.T) {
	t.Setenv("POLICY_DEFAULT_ROLE", "superuser")

	_, err := Load()
	assert.Error(t, err)
}
