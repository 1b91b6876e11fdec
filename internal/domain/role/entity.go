package role

import "time"

// Reserved role names. Both are created by the seeder and protected
// from rename and delete.
const (
	NameAdmin  = "admin"
	NameCommon = "common"
)

// Role groups claims under a sluggable name.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Claims      []string  `json:"claims"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsReserved reports whether the role is one of the protected built-ins.
func (r *Role) IsReserved() bool {
	return r.Name == NameAdmin || r.Name == NameCommon
}
