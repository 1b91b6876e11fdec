// internal/repository/postgres/role_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"backoffice-service/internal/domain/role"
	xerrors "backoffice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type RoleRepository struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

const roleColumns = `id, name, description, claims, created_at, updated_at`

func scanRole(row interface{ Scan(...interface{}) error }) (*role.Role, error) {
	var ro role.Role
	err := row.Scan(&ro.ID, &ro.Name, &ro.Description, pq.Array(&ro.Claims), &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ro, nil
}

func (r *RoleRepository) Create(ctx context.Context, ro *role.Role) error {
	query := `
		INSERT INTO roles (name, description, claims)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, ro.Name, ro.Description, pq.Array(ro.Claims)).
		Scan(&ro.ID, &ro.CreatedAt, &ro.UpdatedAt)
	return mapError(err)
}

func (r *RoleRepository) Update(ctx context.Context, ro *role.Role) error {
	query := `
		UPDATE roles
		SET name = $1, description = $2, claims = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, ro.Name, ro.Description, pq.Array(ro.Claims), ro.ID).
		Scan(&ro.UpdatedAt)
	return mapError(err)
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*role.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM roles WHERE id = $1`, roleColumns)

	ro, err := scanRole(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return ro, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*role.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM roles WHERE name = $1`, roleColumns)

	ro, err := scanRole(r.db.QueryRow(ctx, query, name))
	if err != nil {
		return nil, mapError(err)
	}
	return ro, nil
}

func (r *RoleRepository) FindByIDs(ctx context.Context, ids []int64) ([]role.Role, error) {
	if len(ids) == 0 {
		return []role.Role{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM roles WHERE id = ANY($1) ORDER BY array_position($1, id)`, roleColumns)

	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		ro, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, *ro)
	}
	return roles, rows.Err()
}

func buildRoleWhere(f role.ListFilters) (string, []interface{}) {
	if f.FilterByName == "" {
		return "TRUE", nil
	}
	return "(name ILIKE $1 OR description ILIKE $1)", []interface{}{"%" + f.FilterByName + "%"}
}

var roleSortColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"createdAt":   "created_at",
}

func (r *RoleRepository) Count(ctx context.Context, f role.ListFilters) (int, error) {
	where, args := buildRoleWhere(f)

	var total int
	err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM roles WHERE %s", where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count roles: %w", err)
	}
	return total, nil
}

func (r *RoleRepository) List(ctx context.Context, f role.ListFilters, limit, offset int) ([]role.Role, error) {
	where, args := buildRoleWhere(f)

	sortBy, ok := roleSortColumns[f.SortBy]
	if !ok {
		sortBy = "name"
	}
	dir := "ASC"
	if f.SortDir < 0 {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM roles
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, roleColumns, where, sortBy, dir, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		ro, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, *ro)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) ListAll(ctx context.Context) ([]role.Option, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	options := []role.Option{}
	for rows.Next() {
		var o role.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *RoleRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM roles WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		strings.TrimSpace(name), excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check role name: %w", err)
	}
	return taken, nil
}
