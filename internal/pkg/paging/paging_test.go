package paging

import "testing"

func TestCalculate(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name            string
		page, perPage   int
		total           int
		wantPages       int
		wantCurrent     int
		wantOffset      int
		wantLimit       int
	}{
		{name: "first page of three", page: 1, perPage: 15, total: 42, wantPages: 3, wantCurrent: 1, wantOffset: 0, wantLimit: 15},
		{name: "middle page", page: 2, perPage: 15, total: 42, wantPages: 3, wantCurrent: 2, wantOffset: 15, wantLimit: 15},
		{name: "page past the end clamps to last", page: 10, perPage: 15, total: 42, wantPages: 3, wantCurrent: 3, wantOffset: 30, wantLimit: 15},
		{name: "zero page means first", page: 0, perPage: 15, total: 42, wantPages: 3, wantCurrent: 1, wantOffset: 0, wantLimit: 15},
		{name: "negative page means first", page: -4, perPage: 15, total: 42, wantPages: 3, wantCurrent: 1, wantOffset: 0, wantLimit: 15},
		{name: "zero perPage uses default", page: 1, perPage: 0, total: 42, wantPages: 3, wantCurrent: 1, wantOffset: 0, wantLimit: 15},
		{name: "perPage above max clamps", page: 1, perPage: 500, total: 250, wantPages: 3, wantCurrent: 1, wantOffset: 0, wantLimit: 100},
		{name: "empty listing collapses", page: 3, perPage: 15, total: 0, wantPages: 0, wantCurrent: 0, wantOffset: 0, wantLimit: 15},
		{name: "exact multiple of perPage", page: 2, perPage: 10, total: 20, wantPages: 2, wantCurrent: 2, wantOffset: 10, wantLimit: 10},
		{name: "single short page", page: 1, perPage: 15, total: 7, wantPages: 1, wantCurrent: 1, wantOffset: 0, wantLimit: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.page, tt.perPage, tt.total, cfg)

			if got.Total != tt.total {
				t.Errorf("Total = %d, want %d", got.Total, tt.total)
			}
			if got.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", got.Pages, tt.wantPages)
			}
			if got.CurrentPage != tt.wantCurrent {
				t.Errorf("CurrentPage = %d, want %d", got.CurrentPage, tt.wantCurrent)
			}
			if got.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.wantOffset)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	p := Calculate(1, 15, 2, DefaultConfig())
	list := []string{"a", "b"}

	res := NewResult(p, list)

	if res.Paging != p.Paging {
		t.Errorf("Paging = %+v, want %+v", res.Paging, p.Paging)
	}
	got, ok := res.List.([]string)
	if !ok || len(got) != 2 {
		t.Errorf("List = %v, want the original slice", res.List)
	}
}
