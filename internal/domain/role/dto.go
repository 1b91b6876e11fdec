package role

// CreateInput carries a new role. Name is slugged before storage.
type CreateInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Claims      []string `json:"claims"`
}

// UpdateInput carries a role edit. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Claims      *[]string `json:"claims"`
}

// ListFilters narrows and orders the paginated roles listing.
type ListFilters struct {
	FilterByName string
	SortBy       string
	SortDir      int
	Page         int
	PerPage      int
}

// Option is the reduced projection used by dropdowns.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
