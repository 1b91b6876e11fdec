package claims

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Claim
		wantErr bool
	}{
		{name: "valid pair", in: "Users:Create", want: Claim{Type: "Users", Value: "Create"}},
		{name: "value keeps extra colon", in: "Users:a:b", want: Claim{Type: "Users", Value: "a:b"}},
		{name: "missing value", in: "Users:", wantErr: true},
		{name: "missing type", in: ":Create", wantErr: true},
		{name: "no separator", in: "Users", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultRegistryAll(t *testing.T) {
	r := DefaultRegistry()
	all := r.All()

	if len(all) != 15 {
		t.Fatalf("expected 15 claims, got %d", len(all))
	}
	// Definition order must survive.
	if all[0] != "Products:Products" || all[5] != "Users:Users" || all[14] != "Roles:Delete" {
		t.Errorf("catalog out of order: %v", all)
	}
	for _, pair := range all {
		if !r.Contains(pair) {
			t.Errorf("Contains(%q) = false for registered claim", pair)
		}
	}
	if r.Contains("Users:Manage") {
		t.Error("Contains reported an unregistered claim")
	}
}

func TestGroupByModule(t *testing.T) {
	r := NewRegistry([]Claim{
		{Type: "Products", Value: "Create"},
		{Type: "Users", Value: "Users"},
		{Type: "Products", Value: "Update"},
		{Type: "Products", Value: "Create"}, // duplicate, must be dropped
		{Type: "Users", Value: "Create"},
	})

	got := r.GroupByModule()
	want := []Permission{
		{Name: "Products", Claims: []Claim{
			{Type: "Products", Value: "Create"},
			{Type: "Products", Value: "Update"},
		}},
		{Name: "Users", Claims: []Claim{
			{Type: "Users", Value: "Users"},
			{Type: "Users", Value: "Create"},
		}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByModule() = %+v, want %+v", got, want)
	}
}

func TestGroupByModuleDefault(t *testing.T) {
	groups := DefaultRegistry().GroupByModule()

	if len(groups) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(groups))
	}
	order := []string{"Products", "Users", "Roles"}
	for i, g := range groups {
		if g.Name != order[i] {
			t.Errorf("module %d = %s, want %s", i, g.Name, order[i])
		}
		if len(g.Claims) != 5 {
			t.Errorf("module %s has %d claims, want 5", g.Name, len(g.Claims))
		}
	}
}
