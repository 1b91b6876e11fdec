// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"fmt"

	"backoffice-service/internal/domain/product"
	xerrors "backoffice-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.Price).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.ID).Scan(&p.UpdatedAt)
	return mapError(err)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func buildProductWhere(f product.ListFilters) (string, []interface{}) {
	if f.FilterByName == "" {
		return "TRUE", nil
	}
	return "(name ILIKE $1 OR description ILIKE $1)", []interface{}{"%" + f.FilterByName + "%"}
}

var productSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

func (r *ProductRepository) Count(ctx context.Context, f product.ListFilters) (int, error) {
	where, args := buildProductWhere(f)

	var total int
	err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *ProductRepository) List(ctx context.Context, f product.ListFilters, limit, offset int) ([]product.Product, error) {
	where, args := buildProductWhere(f)

	sortBy, ok := productSortColumns[f.SortBy]
	if !ok {
		sortBy = "name"
	}
	dir := "ASC"
	if f.SortDir < 0 {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, productColumns, where, sortBy, dir, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]product.Option, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	options := []product.Option{}
	for rows.Next() {
		var o product.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *ProductRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		name, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return taken, nil
}
