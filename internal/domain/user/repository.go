package user

import (
	"context"
	"time"
)

// Repository is the storage port for users. Find methods return the
// aggregate with Roles hydrated in the same round trip.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	Count(ctx context.Context, f ListFilters) (int, error)
	List(ctx context.Context, f ListFilters, limit, offset int) ([]User, error)
	ListAll(ctx context.Context, includeSuperAdmins bool) ([]Option, error)

	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	SetResetCode(ctx context.Context, id int64, code string, expires time.Time) error
	UpdatePassword(ctx context.Context, id int64, hash string, roleIDs []int64) error
	UpdatePhoto(ctx context.Context, id int64, photo string) error
	CountWithRole(ctx context.Context, roleID int64) (int, error)
}
