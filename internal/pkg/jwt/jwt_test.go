package jwt

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
)

func testUser(roles ...role.Role) *user.User {
	return &user.User{
		ID:      42,
		Name:    "Jane",
		Surname: "Doe",
		Email:   "jane@example.com",
		Roles:   roles,
	}
}

func TestNewSessionClaimsSuperAdmin(t *testing.T) {
	u := testUser(role.Role{Name: "editor", Claims: []string{"Users:Users"}})
	u.IsSuperAdmin = true
	u.Claims = []string{"Products:Delete"}

	c := NewSessionClaims(u, claims.DefaultRegistry(), false, 7, time.Now())

	if !c.IsSuperAdmin {
		t.Error("spa flag not set")
	}
	if c.IsAdmin {
		t.Error("adm must stay false for super admins")
	}
	if len(c.Claims) != 0 || len(c.Roles) != 0 {
		t.Errorf("super admin token must carry empty lists, got clm=%v rol=%v", c.Claims, c.Roles)
	}
}

func TestNewSessionClaimsAdminRoleOverride(t *testing.T) {
	// Stored claims are empty on purpose: holding the admin role alone
	// must grant the entire catalog.
	u := testUser(role.Role{Name: "admin", Claims: []string{}})
	registry := claims.DefaultRegistry()

	c := NewSessionClaims(u, registry, false, 7, time.Now())

	if c.IsSuperAdmin {
		t.Error("spa must stay false")
	}
	if !c.IsAdmin {
		t.Error("adm flag not set for admin role holder")
	}
	if !reflect.DeepEqual(c.Claims, registry.All()) {
		t.Errorf("clm = %v, want full registry", c.Claims)
	}
	if !reflect.DeepEqual(c.Roles, []string{"admin"}) {
		t.Errorf("rol = %v, want [admin]", c.Roles)
	}
}

func TestNewSessionClaimsFlattening(t *testing.T) {
	u := testUser(
		role.Role{Name: "editor", Claims: []string{"Users:Users", "Users:User"}},
		role.Role{Name: "catalog", Claims: []string{"Products:Products", "Users:Users"}},
	)
	u.Claims = []string{"Roles:Roles", "Users:User"}

	c := NewSessionClaims(u, claims.DefaultRegistry(), false, 7, time.Now())

	want := []string{"Users:Users", "Users:User", "Products:Products", "Roles:Roles"}
	if !reflect.DeepEqual(c.Claims, want) {
		t.Errorf("clm = %v, want %v", c.Claims, want)
	}
	if !reflect.DeepEqual(c.Roles, []string{"editor", "catalog"}) {
		t.Errorf("rol = %v", c.Roles)
	}
	if c.IsAdmin {
		t.Error("adm must stay false without the admin role")
	}
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	c := NewSessionClaims(testUser(), claims.DefaultRegistry(), false, 7, now)
	wantEOD := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	if !c.ExpiresAt.Time.Equal(wantEOD) {
		t.Errorf("default expiry = %v, want %v", c.ExpiresAt.Time, wantEOD)
	}

	c = NewSessionClaims(testUser(), claims.DefaultRegistry(), true, 7, now)
	wantRemember := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	if !c.ExpiresAt.Time.Equal(wantRemember) {
		t.Errorf("remember expiry = %v, want %v", c.ExpiresAt.Time, wantRemember)
	}
}

func TestHasClaim(t *testing.T) {
	tests := []struct {
		name       string
		claims     *Claims
		permission string
		want       bool
	}{
		{name: "super admin passes anything", claims: &Claims{IsSuperAdmin: true}, permission: "Users:Delete", want: true},
		{name: "admin passes anything", claims: &Claims{IsAdmin: true}, permission: "Users:Delete", want: true},
		{name: "direct claim", claims: &Claims{Claims: []string{"Users:Users"}}, permission: "Users:Users", want: true},
		{name: "missing claim", claims: &Claims{Claims: []string{"Users:Users"}}, permission: "Users:Create", want: false},
		{name: "blank never passes", claims: &Claims{IsSuperAdmin: true}, permission: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.HasClaim(tt.permission); got != tt.want {
				t.Errorf("HasClaim(%q) = %v, want %v", tt.permission, got, tt.want)
			}
		})
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager(Config{Secret: "test-secret", Issuer: "backoffice", ExpiresDays: 7})

	token, issued, err := m.Issue(testUser(role.Role{Name: "editor", Claims: []string{"Users:Users"}}), claims.DefaultRegistry(), false, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.ID == "" {
		t.Error("jti not set")
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.User.ID != 42 || got.User.Email != "jane@example.com" {
		t.Errorf("usr = %+v", got.User)
	}
	if !reflect.DeepEqual(got.Claims, []string{"Users:Users"}) {
		t.Errorf("clm = %v", got.Claims)
	}
	if got.Issuer != "backoffice" {
		t.Errorf("iss = %q", got.Issuer)
	}
}

func TestManagerVerifyFailuresAreUniform(t *testing.T) {
	m := NewManager(Config{Secret: "test-secret", ExpiresDays: 7})
	other := NewManager(Config{Secret: "different-secret", ExpiresDays: 7})

	expired, _, err := m.Issue(testUser(), claims.DefaultRegistry(), false, time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	foreign, _, err := other.Issue(testUser(), claims.DefaultRegistry(), false, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, xerrors.ErrUnauthenticated) {
				t.Errorf("Verify(%s) error = %v, want ErrUnauthenticated", tt.name, err)
			}
		})
	}
}
