package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixworks/repairdesk/internal/domain"
)

// ErrDuplicateEmail is returned when registering an already-known email.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository stores identity-provider accounts. The core never reads
// accounts; only the identity adapter does.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByPrincipal(ctx context.Context, principal domain.Principal) (*domain.Account, error)
}

type memoryAccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Account
	byPrinc map[domain.Principal]*domain.Account
}

// NewMemoryAccountRepository builds an empty in-memory account store.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		byEmail: make(map[string]*domain.Account),
		byPrinc: make(map[domain.Principal]*domain.Account),
	}
}

func (r *memoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	key := strings.ToLower(account.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicateEmail
	}
	stored := *account
	r.byEmail[key] = &stored
	r.byPrinc[account.Principal] = &stored
	return nil
}

func (r *memoryAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) GetByPrincipal(_ context.Context, principal domain.Principal) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byPrinc[principal]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

type pgAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgAccountRepository instantiates the postgres-backed account store.
func NewPgAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &pgAccountRepository{pool: pool}
}

func (r *pgAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (principal, email, name, password_hash)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (email) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query,
		string(account.Principal),
		strings.ToLower(account.Email),
		account.Name,
		account.PasswordHash,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateEmail
	}
	return nil
}

func (r *pgAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT principal, email, name, password_hash FROM accounts WHERE email=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
}

func (r *pgAccountRepository) GetByPrincipal(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	const query = `SELECT principal, email, name, password_hash FROM accounts WHERE principal=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, string(principal)))
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account   domain.Account
		principal string
	)
	if err := row.Scan(&principal, &account.Email, &account.Name, &account.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	account.Principal = domain.Principal(principal)
	return &account, nil
}
