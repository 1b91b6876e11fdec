// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, surname, email, password, photo, is_super_admin, is_activated,
	reset_code, reset_expires, role_ids, claims, created_at, updated_at, deleted_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.Photo,
		&u.IsSuperAdmin, &u.IsActivated, &u.ResetCode, &u.ResetExpires,
		pq.Array(&u.RoleIDs), pq.Array(&u.Claims),
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and fills the generated fields.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, surname, email, password, photo, is_super_admin, is_activated, role_ids, claims)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		u.Name, u.Surname, u.Email, u.Password, u.Photo,
		u.IsSuperAdmin, u.IsActivated, pq.Array(u.RoleIDs), pq.Array(u.Claims),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	return r.hydrateRoles(ctx, u)
}

// Update rewrites the mutable columns of the row.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $1, surname = $2, email = $3, password = $4, photo = $5,
		    is_super_admin = $6, is_activated = $7, role_ids = $8, claims = $9,
		    updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		u.Name, u.Surname, u.Email, u.Password, u.Photo,
		u.IsSuperAdmin, u.IsActivated, pq.Array(u.RoleIDs), pq.Array(u.Claims),
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	return r.hydrateRoles(ctx, u)
}

// SoftDelete stamps the row; listings and lookups skip stamped rows.
func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Restore clears the deletion stamp.
func (r *UserRepository) Restore(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = NULL, updated_at = NOW() WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to restore user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// FindByID returns the aggregate with roles hydrated.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.hydrateRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail matches case-insensitively and hydrates roles.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`, userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.hydrateRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func buildUserWhere(f user.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if !f.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if !f.IncludeSuperAdmins {
		conditions = append(conditions, "is_super_admin = false")
	}
	if f.FilterByName != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR surname ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+f.FilterByName+"%")
		argPos++
	}
	if f.FilterByEmail != "" {
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", argPos))
		args = append(args, "%"+f.FilterByEmail+"%")
		argPos++
	}

	if len(conditions) == 0 {
		return "TRUE", args
	}
	return strings.Join(conditions, " AND "), args
}

var userSortColumns = map[string]string{
	"name":      "name",
	"surname":   "surname",
	"email":     "email",
	"createdAt": "created_at",
}

// Count returns the total row count for the filter set.
func (r *UserRepository) Count(ctx context.Context, f user.ListFilters) (int, error) {
	where, args := buildUserWhere(f)

	var total int
	err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM users WHERE %s", where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// List returns one page with roles hydrated in a single extra round trip.
func (r *UserRepository) List(ctx context.Context, f user.ListFilters, limit, offset int) ([]user.User, error) {
	where, args := buildUserWhere(f)

	sortBy, ok := userSortColumns[f.SortBy]
	if !ok {
		sortBy = "name"
	}
	dir := "ASC"
	if f.SortDir < 0 {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, sortBy, dir, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrateRolesBulk(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAll is the dropdown projection.
func (r *UserRepository) ListAll(ctx context.Context, includeSuperAdmins bool) ([]user.Option, error) {
	query := `
		SELECT id, name, surname, email FROM users
		WHERE deleted_at IS NULL AND (is_super_admin = false OR $1)
		ORDER BY name, surname
	`

	rows, err := r.db.Query(ctx, query, includeSuperAdmins)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	options := []user.Option{}
	for rows.Next() {
		var o user.Option
		if err := rows.Scan(&o.ID, &o.Name, &o.Surname, &o.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// EmailTaken checks uniqueness before create/update so callers can
// return a Conflict instead of bubbling a constraint violation.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2 AND deleted_at IS NULL)`,
		email, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return taken, nil
}

// SetResetCode stores a password reset code with its expiry.
func (r *UserRepository) SetResetCode(ctx context.Context, id int64, code string, expires time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET reset_code = $1, reset_expires = $2, updated_at = NOW() WHERE id = $3 AND deleted_at IS NULL`,
		code, expires, id)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword swaps the hash, clears any pending reset code and
// rewrites role_ids so a reset can fall the user back onto a role.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string, roleIDs []int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, role_ids = $2, reset_code = NULL, reset_expires = NULL, updated_at = NOW()
		 WHERE id = $3 AND deleted_at IS NULL`,
		hash, pq.Array(roleIDs), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdatePhoto stores the new stored-file name.
func (r *UserRepository) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET photo = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		photo, id)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// CountWithRole counts live users holding a role id.
func (r *UserRepository) CountWithRole(ctx context.Context, roleID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE $1 = ANY(role_ids) AND deleted_at IS NULL`, roleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users with role: %w", err)
	}
	return count, nil
}

// hydrateRoles loads the roles behind role_ids, preserving their order.
func (r *UserRepository) hydrateRoles(ctx context.Context, u *user.User) error {
	u.Roles = []role.Role{}
	if len(u.RoleIDs) == 0 {
		return nil
	}

	query := `
		SELECT id, name, description, claims, created_at, updated_at
		FROM roles
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
	`

	rows, err := r.db.Query(ctx, query, pq.Array(u.RoleIDs))
	if err != nil {
		return fmt.Errorf("failed to hydrate roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, pq.Array(&ro.Claims), &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		u.Roles = append(u.Roles, ro)
	}
	return rows.Err()
}

// hydrateRolesBulk fetches the union of role ids once and fans the
// rows back out, so a page of users costs two queries total.
func (r *UserRepository) hydrateRolesBulk(ctx context.Context, users []user.User) error {
	idSet := make(map[int64]bool)
	allIDs := []int64{}
	for i := range users {
		for _, id := range users[i].RoleIDs {
			if !idSet[id] {
				idSet[id] = true
				allIDs = append(allIDs, id)
			}
		}
	}
	if len(allIDs) == 0 {
		for i := range users {
			users[i].Roles = []role.Role{}
		}
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, claims, created_at, updated_at FROM roles WHERE id = ANY($1)`,
		pq.Array(allIDs))
	if err != nil {
		return fmt.Errorf("failed to hydrate roles: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]role.Role)
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, pq.Array(&ro.Claims), &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		byID[ro.ID] = ro
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range users {
		users[i].Roles = []role.Role{}
		for _, id := range users[i].RoleIDs {
			if ro, ok := byID[id]; ok {
				users[i].Roles = append(users[i].Roles, ro)
			}
		}
	}
	return nil
}
