package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fixworks/repairdesk/internal/auth"
	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/domain"
	"github.com/fixworks/repairdesk/internal/repository"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// IdentityService is the authentication-provider adapter: it mints stable
// opaque principals at registration and exchanges credentials for bearer
// tokens. The core never looks inside a principal.
type IdentityService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.AuthConfig, accounts repository.AccountRepository) *IdentityService {
	return &IdentityService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account, minting a fresh principal, and returns a
// signed token for it.
func (s *IdentityService) Register(ctx context.Context, name, email, password string) (*domain.Account, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email, password required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	account := &domain.Account{
		Principal:    domain.Principal(uuid.NewString()),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.Principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return account, token, expiresAt, nil
}

// Login authenticates an account and returns a signed token.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.Principal)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return account, token, expiresAt, nil
}

// Whoami returns the account backing a principal.
func (s *IdentityService) Whoami(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	account, err := s.accounts.GetByPrincipal(ctx, principal)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}
