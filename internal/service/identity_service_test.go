package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/repository"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

func newIdentityService() *IdentityService {
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4, // minimum cost keeps tests fast
	}
	return NewIdentityService(cfg, repository.NewMemoryAccountRepository())
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newIdentityService()
	ctx := context.Background()

	account, token, _, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, account.Principal)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(account.Principal), claims.Principal)

	loggedIn, _, _, err := svc.Login(ctx, "dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, account.Principal, loggedIn.Principal)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newIdentityService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Other Dana", "Dana@Example.com", "different")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newIdentityService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "dana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestWhoami(t *testing.T) {
	svc := newIdentityService()
	ctx := context.Background()

	account, _, _, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	found, err := svc.Whoami(ctx, account.Principal)
	require.NoError(t, err)
	assert.Equal(t, "Dana", found.Name)

	_, err = svc.Whoami(ctx, "unknown-principal")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
