package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/jwt"
)

type fakeUsers struct {
	user.Repository
	byID map[int64]*user.User
}

func (f *fakeUsers) FindByID(ctx context.Context, id int64) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, xerrors.ErrNotFound
}

func newGate(t *testing.T, u *user.User, users user.Repository) *Gate {
	t.Helper()
	m := jwt.NewManager(jwt.Config{Secret: "gate-test-secret", ExpiresDays: 7})
	token, _, err := m.Issue(u, claims.DefaultRegistry(), false, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return New(m, users, token)
}

func TestGateAnonymous(t *testing.T) {
	m := jwt.NewManager(jwt.Config{Secret: "gate-test-secret", ExpiresDays: 7})

	for _, token := range []string{"", "garbage-token"} {
		g := New(m, nil, token)

		if g.Authenticated() {
			t.Errorf("token %q: gate must be anonymous", token)
		}
		if err := g.RequireAuthenticated(); !errors.Is(err, xerrors.ErrUnauthenticated) {
			t.Errorf("RequireAuthenticated = %v, want ErrUnauthenticated", err)
		}
		if err := g.RequirePermission("Users:Users"); !errors.Is(err, xerrors.ErrUnauthenticated) {
			t.Errorf("RequirePermission = %v, want ErrUnauthenticated", err)
		}
		if _, err := g.CurrentUser(context.Background()); !errors.Is(err, xerrors.ErrUnauthenticated) {
			t.Errorf("CurrentUser = %v, want ErrUnauthenticated", err)
		}
	}
}

func TestGateSuperAdminPassesEverything(t *testing.T) {
	g := newGate(t, &user.User{ID: 1, IsSuperAdmin: true}, nil)

	if err := g.RequirePermission("Users:Delete"); err != nil {
		t.Errorf("RequirePermission = %v", err)
	}
	if err := g.RequireAll("Users:Users", "Roles:Delete", "Products:Create"); err != nil {
		t.Errorf("RequireAll = %v", err)
	}
	// Blank stays forbidden even for super admins.
	if err := g.RequirePermission(""); !errors.Is(err, xerrors.ErrForbidden) {
		t.Errorf("blank permission = %v, want ErrForbidden", err)
	}
}

func TestGateAdminRoleOverride(t *testing.T) {
	// The admin role grants everything even with empty stored claims.
	g := newGate(t, &user.User{ID: 2, Roles: []role.Role{{Name: "admin"}}}, nil)

	if err := g.RequireAll("Users:Create", "Roles:Delete"); err != nil {
		t.Errorf("RequireAll = %v", err)
	}
}

func TestGatePermissionChecks(t *testing.T) {
	u := &user.User{ID: 3, Roles: []role.Role{{Name: "editor", Claims: []string{"Products:Products", "Products:Product"}}}}
	g := newGate(t, u, nil)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{name: "held claim passes", call: func() error { return g.RequirePermission("Products:Products") }, want: nil},
		{name: "listing claim does not imply create", call: func() error { return g.RequirePermission("Products:Create") }, want: xerrors.ErrForbidden},
		{name: "all with one missing fails", call: func() error { return g.RequireAll("Products:Products", "Products:Create") }, want: xerrors.ErrForbidden},
		{name: "any with one held passes", call: func() error { return g.RequireAny("Products:Create", "Products:Product") }, want: nil},
		{name: "any with none held fails", call: func() error { return g.RequireAny("Users:Users", "Roles:Roles") }, want: xerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if tt.want == nil && err != nil {
				t.Errorf("got %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGateCurrentUser(t *testing.T) {
	stored := &user.User{ID: 7, Name: "Jane", Email: "jane@example.com"}
	users := &fakeUsers{byID: map[int64]*user.User{7: stored}}

	g := newGate(t, stored, users)
	got, err := g.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != 7 || got.Email != "jane@example.com" {
		t.Errorf("CurrentUser = %+v", got)
	}

	// A valid token for a row that has since vanished.
	gone := newGate(t, &user.User{ID: 99}, users)
	if _, err := gone.CurrentUser(context.Background()); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("CurrentUser for missing row = %v, want ErrNotFound", err)
	}
}
