package paging

// Config bounds page sizes for every paginated listing.
type Config struct {
	PerPage    int
	MaxPerPage int
}

// DefaultConfig matches the listing defaults of the admin UI.
func DefaultConfig() Config {
	return Config{PerPage: 15, MaxPerPage: 100}
}

// Paging is the slice of the result envelope that describes position.
type Paging struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
}

// Pages is the outcome of one pagination calculation. Offset and Limit
// feed the repository query; Paging goes back to the client.
type Pages struct {
	Paging
	Offset int
	Limit  int
}

// Calculate clamps the requested page and page size against the total
// row count. A zero or negative page means page one; totals of zero
// collapse to page zero with no offset, so empty listings never issue
// a negative offset.
func Calculate(page, perPage, total int, cfg Config) Pages {
	if perPage <= 0 {
		perPage = cfg.PerPage
	}
	if perPage > cfg.MaxPerPage {
		perPage = cfg.MaxPerPage
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (total + perPage - 1) / perPage

	current := page
	if current > totalPages {
		current = totalPages
	}

	offset := (current - 1) * perPage
	if offset < 0 {
		offset = 0
	}

	return Pages{
		Paging: Paging{
			Total:       total,
			Pages:       totalPages,
			PerPage:     perPage,
			CurrentPage: current,
		},
		Offset: offset,
		Limit:  perPage,
	}
}

// Result is the uniform listing envelope: position plus the rows of
// the current page.
type Result struct {
	Paging Paging      `json:"paging"`
	List   interface{} `json:"list"`
}

// NewResult pairs a calculation with the rows it selected.
func NewResult(p Pages, list interface{}) Result {
	return Result{Paging: p.Paging, List: list}
}
