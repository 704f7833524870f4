package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/auth"
	"zenbill/internal/infrastructure/storage/postgres"
)

const roleColumns = `id, code, name, description, is_system, created_at, updated_at`

var _ auth.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implements auth.RoleRepository.
type RoleRepo struct {
	txManager *postgres.TxManager
}

// NewRoleRepo creates a new role repository.
func NewRoleRepo(txManager *postgres.TxManager) *RoleRepo {
	return &RoleRepo{txManager: txManager}
}

// Create creates a new role.
func (r *RoleRepo) Create(ctx context.Context, role *auth.Role) error {
	q := r.txManager.GetQuerier(ctx)

	_, err := q.Exec(ctx, `
		INSERT INTO roles (id, code, name, description, is_system, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, role.ID, role.Code, role.Name, role.Description, role.IsSystem,
		role.CreatedAt, role.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict(fmt.Sprintf("role with code '%s' already exists", role.Code))
		}
		return fmt.Errorf("insert role: %w", err)
	}

	return nil
}

func (r *RoleRepo) scanRole(row pgx.Row) (*auth.Role, error) {
	var role auth.Role
	err := row.Scan(&role.ID, &role.Code, &role.Name, &role.Description,
		&role.IsSystem, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByID retrieves role by ID.
func (r *RoleRepo) GetByID(ctx context.Context, roleID id.ID) (*auth.Role, error) {
	q := r.txManager.GetQuerier(ctx)

	role, err := r.scanRole(q.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = $1`, roleID))
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("role", roleID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query role: %w", err)
	}

	return role, nil
}

// GetByCode retrieves role by code.
func (r *RoleRepo) GetByCode(ctx context.Context, code string) (*auth.Role, error) {
	q := r.txManager.GetQuerier(ctx)

	role, err := r.scanRole(q.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE code = $1`, code))
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("role", code)
	}
	if err != nil {
		return nil, fmt.Errorf("query role: %w", err)
	}

	return role, nil
}

// Update updates role data.
func (r *RoleRepo) Update(ctx context.Context, role *auth.Role) error {
	q := r.txManager.GetQuerier(ctx)

	result, err := q.Exec(ctx, `
		UPDATE roles
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`, role.ID, role.Name, role.Description)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("role", role.ID.String())
	}

	return nil
}

// Delete deletes a role. System roles cannot be deleted.
func (r *RoleRepo) Delete(ctx context.Context, roleID id.ID) error {
	q := r.txManager.GetQuerier(ctx)

	result, err := q.Exec(ctx,
		`DELETE FROM roles WHERE id = $1 AND is_system = false`, roleID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: role is assigned to users")
		}
		return fmt.Errorf("delete role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("role", roleID.String())
	}

	return nil
}

// List retrieves all roles.
func (r *RoleRepo) List(ctx context.Context) ([]auth.Role, error) {
	q := r.txManager.GetQuerier(ctx)

	rows, err := q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var roles []auth.Role
	for rows.Next() {
		role, err := r.scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, *role)
	}

	return roles, rows.Err()
}
