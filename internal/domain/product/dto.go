package product

// CreateInput carries a new product.
type CreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateInput carries a product edit. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// ListFilters narrows and orders the paginated products listing.
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
