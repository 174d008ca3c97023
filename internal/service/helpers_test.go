package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/domain"
	"github.com/fixworks/repairdesk/internal/events"
	"github.com/fixworks/repairdesk/internal/repository"
)

const (
	adminPrincipal = domain.Principal("principal-admin")
	alicePrincipal = domain.Principal("principal-alice")
	bobPrincipal   = domain.Principal("principal-bob")
)

type fixture struct {
	tickets    *TicketService
	roles      *RoleService
	dispatcher events.Dispatcher
	clock      time.Time
}

func defaultPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		DefaultRole:     domain.RoleUser,
		BootstrapAdmins: []domain.Principal{adminPrincipal},
	}
}

func newFixture(t *testing.T, policy config.PolicyConfig) *fixture {
	t.Helper()

	dispatcher := events.NewInMemoryDispatcher()
	roles, err := NewRoleService(context.Background(), repository.NewMemoryRoleRepository(), dispatcher, policy)
	require.NoError(t, err)

	f := &fixture{
		roles:      roles,
		dispatcher: dispatcher,
		clock:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.tickets = NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(),
		Roles:      roles,
		Dispatcher: dispatcher,
	}, policy)
	f.tickets.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func sampleInput() TicketCreateInput {
	return TicketCreateInput{
		CustomerName:     "Dana Reyes",
		ContactInfo:      "dana@example.com",
		DeviceBrand:      "Lenovo",
		DeviceModel:      "ThinkPad X1",
		IssueDescription: "does not power on",
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
