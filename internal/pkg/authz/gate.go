package authz

import (
	"context"

	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/jwt"
)

// Verifier validates a compact session token.
type Verifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Gate answers authorization questions for a single request. The
// token is verified exactly once at construction; a missing or bad
// token leaves the gate permanently unauthenticated for the request.
type Gate struct {
	claims *jwt.Claims
	users  user.Repository
}

// New builds a gate from the raw bearer token. An empty token is a
// valid anonymous gate.
func New(verifier Verifier, users user.Repository, token string) *Gate {
	g := &Gate{users: users}
	if token == "" {
		return g
	}
	if claims, err := verifier.Verify(token); err == nil {
		g.claims = claims
	}
	return g
}

// Authenticated reports whether the request carried a valid token.
func (g *Gate) Authenticated() bool {
	return g.claims != nil
}

// Claims returns the verified token claims.
func (g *Gate) Claims() (*jwt.Claims, error) {
	if g.claims == nil {
		return nil, xerrors.ErrUnauthenticated
	}
	return g.claims, nil
}

// RequireAuthenticated fails with ErrUnauthenticated for anonymous
// requests.
func (g *Gate) RequireAuthenticated() error {
	if g.claims == nil {
		return xerrors.ErrUnauthenticated
	}
	return nil
}

// RequirePermission fails with ErrUnauthenticated for anonymous
// requests and ErrForbidden when the permission is blank or not held.
func (g *Gate) RequirePermission(permission string) error {
	if g.claims == nil {
		return xerrors.ErrUnauthenticated
	}
	if !g.claims.HasClaim(permission) {
		return xerrors.ErrForbidden
	}
	return nil
}

// RequireAll passes only when every permission is held.
func (g *Gate) RequireAll(permissions ...string) error {
	for _, p := range permissions {
		if err := g.RequirePermission(p); err != nil {
			return err
		}
	}
	return nil
}

// RequireAny passes when at least one permission is held.
func (g *Gate) RequireAny(permissions ...string) error {
	if g.claims == nil {
		return xerrors.ErrUnauthenticated
	}
	for _, p := range permissions {
		if g.claims.HasClaim(p) {
			return nil
		}
	}
	return xerrors.ErrForbidden
}

// CurrentUser loads the full record behind the token. A token whose
// user no longer exists surfaces ErrNotFound rather than a silent nil.
func (g *Gate) CurrentUser(ctx context.Context) (*user.User, error) {
	if g.claims == nil {
		return nil, xerrors.ErrUnauthenticated
	}
	u, err := g.users.FindByID(ctx, g.claims.User.ID)
	if err != nil {
		return nil, err
	}
	return u, nil
}
