package claims

import (
	"fmt"
	"strings"
)

// Claim is a single grantable capability, addressed as "Type:Value".
// Type groups claims by back-office module, Value names the operation.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c Claim) String() string {
	return c.Type + ":" + c.Value
}

// Parse splits a "Type:Value" pair back into a Claim.
func Parse(s string) (Claim, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Claim{}, fmt.Errorf("malformed claim %q", s)
	}
	return Claim{Type: parts[0], Value: parts[1]}, nil
}

// Permission groups the claims of one module for the admin UI.
type Permission struct {
	Name   string  `json:"name"`
	Claims []Claim `json:"claims"`
}

// Registry is the ordered catalog of every claim the application knows.
// It is built once at startup and injected wherever claims are needed.
type Registry struct {
	claims []Claim
}

func NewRegistry(claims []Claim) *Registry {
	return &Registry{claims: claims}
}

// DefaultRegistry returns the built-in catalog. Each module carries a
// list claim, a read claim and the three mutation claims.
func DefaultRegistry() *Registry {
	return NewRegistry([]Claim{
		{Type: "Products", Value: "Products"},
		{Type: "Products", Value: "Product"},
		{Type: "Products", Value: "Create"},
		{Type: "Products", Value: "Update"},
		{Type: "Products", Value: "Delete"},
		{Type: "Users", Value: "Users"},
		{Type: "Users", Value: "User"},
		{Type: "Users", Value: "Create"},
		{Type: "Users", Value: "Update"},
		{Type: "Users", Value: "Delete"},
		{Type: "Roles", Value: "Roles"},
		{Type: "Roles", Value: "Role"},
		{Type: "Roles", Value: "Create"},
		{Type: "Roles", Value: "Update"},
		{Type: "Roles", Value: "Delete"},
	})
}

// Claims returns the catalog in definition order.
func (r *Registry) Claims() []Claim {
	out := make([]Claim, len(r.claims))
	copy(out, r.claims)
	return out
}

// All returns every claim as its "Type:Value" pair, in definition order.
func (r *Registry) All() []string {
	out := make([]string, 0, len(r.claims))
	for _, c := range r.claims {
		out = append(out, c.String())
	}
	return out
}

// Contains reports whether the pair names a registered claim.
func (r *Registry) Contains(pair string) bool {
	for _, c := range r.claims {
		if c.String() == pair {
			return true
		}
	}
	return false
}

// GroupByModule folds the catalog into per-module permissions.
// Modules appear in first-seen order; duplicate pairs within a module
// are dropped.
func (r *Registry) GroupByModule() []Permission {
	index := make(map[string]int)
	seen := make(map[string]bool)
	groups := []Permission{}

	for _, c := range r.claims {
		i, ok := index[c.Type]
		if !ok {
			i = len(groups)
			index[c.Type] = i
			groups = append(groups, Permission{Name: c.Type})
		}
		if seen[c.String()] {
			continue
		}
		seen[c.String()] = true
		groups[i].Claims = append(groups[i].Claims, c)
	}

	return groups
}
