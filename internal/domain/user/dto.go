package user

// CreateInput carries a new user created from the admin UI.
type CreateInput struct {
	Name         string   `json:"name" binding:"required"`
	Surname      string   `json:"surname" binding:"required"`
	Email        string   `json:"email" binding:"required"`
	Password     string   `json:"password" binding:"required"`
	IsSuperAdmin bool     `json:"isSuperAdmin"`
	IsActivated  bool     `json:"isActivated"`
	RoleIDs      []int64  `json:"roleIds"`
	Claims       []string `json:"claims"`
}

// UpdateInput carries a user edit. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string   `json:"name"`
	Surname      *string   `json:"surname"`
	Email        *string   `json:"email"`
	Password     *string   `json:"password"`
	IsSuperAdmin *bool     `json:"isSuperAdmin"`
	IsActivated  *bool     `json:"isActivated"`
	RoleIDs      *[]int64  `json:"roleIds"`
	Claims       *[]string `json:"claims"`
}

// ListFilters narrows and orders the paginated users listing.
// IncludeSuperAdmins is only set when the caller is a super admin.
type ListFilters struct {
	FilterByName       string
	FilterByEmail      string
	SortBy             string
	SortDir            int
	Page               int
	PerPage            int
	IncludeSuperAdmins bool
	IncludeDeleted     bool
}

// Option is the reduced projection used by dropdowns.
type Option struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}
