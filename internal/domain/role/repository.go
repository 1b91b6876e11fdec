package role

import "context"

// Repository is the storage port for roles.
type Repository interface {
	Create(ctx context.Context, r *Role) error
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Role, error)

	Count(ctx context.Context, f ListFilters) (int, error)
	List(ctx context.Context, f ListFilters, limit, offset int) ([]Role, error)
	ListAll(ctx context.Context) ([]Option, error)

	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}
