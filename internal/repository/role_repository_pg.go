package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixworks/repairdesk/internal/domain"
)

type pgRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPgRoleRepository instantiates the postgres-backed role mapping.
func NewPgRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &pgRoleRepository{pool: pool}
}

func (r *pgRoleRepository) Get(ctx context.Context, principal domain.Principal) (domain.Role, bool, error) {
	const query = `SELECT role FROM principal_roles WHERE principal=$1`
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, string(principal)).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return role, true, nil
}

func (r *pgRoleRepository) Set(ctx context.Context, principal domain.Principal, role domain.Role) error {
	const query = `
        INSERT INTO principal_roles (principal, role) VALUES ($1,$2)
        ON CONFLICT (principal) DO UPDATE SET role=EXCLUDED.role, updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query, string(principal), role)
	return err
}
