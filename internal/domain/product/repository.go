package product

import "context"

// Repository is the storage port for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (*Product, error)

	Count(ctx context.Context, f ListFilters) (int, error)
	List(ctx context.Context, f ListFilters, limit, offset int) ([]Product, error)
	ListAll(ctx context.Context) ([]Option, error)

	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}
