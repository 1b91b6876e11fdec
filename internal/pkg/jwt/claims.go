package jwt

import (
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. Short JSON keys keep the token
// compact; usr carries the redacted user projection only.
type Claims struct {
	User         user.TokenUser `json:"usr"`
	IsSuperAdmin bool           `json:"spa"`
	IsAdmin      bool           `json:"adm"`
	Claims       []string       `json:"clm"`
	Roles        []string       `json:"rol"`
	jwt.RegisteredClaims
}

// HasClaim checks the flattened claim list. Super admins and admins
// pass everything; a blank permission never passes.
func (c *Claims) HasClaim(permission string) bool {
	if permission == "" {
		return false
	}
	if c.IsSuperAdmin || c.IsAdmin {
		return true
	}
	for _, cl := range c.Claims {
		if cl == permission {
			return true
		}
	}
	return false
}

// HasRole checks the flattened role name list.
func (c *Claims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// NewSessionClaims flattens a user's grants into token claims.
//
// Super admins carry empty lists: their status alone grants
// everything, and listing claims would only bloat the token. Holders
// of the admin role get the entire registry regardless of what their
// roles or user record store. Everyone else gets their role claims in
// role order followed by per-user extras, first occurrence wins.
func NewSessionClaims(u *user.User, registry *claims.Registry, remember bool, expiresDays int, now time.Time) *Claims {
	c := &Claims{
		User:         u.Redact(),
		IsSuperAdmin: u.IsSuperAdmin,
		Claims:       []string{},
		Roles:        []string{},
	}

	if !u.IsSuperAdmin {
		for _, r := range u.Roles {
			c.Roles = append(c.Roles, r.Name)
		}
		c.IsAdmin = u.HasRole("admin")

		if c.IsAdmin {
			c.Claims = registry.All()
		} else {
			seen := make(map[string]bool)
			for _, r := range u.Roles {
				for _, cl := range r.Claims {
					if !seen[cl] {
						seen[cl] = true
						c.Claims = append(c.Claims, cl)
					}
				}
			}
			for _, cl := range u.Claims {
				if !seen[cl] {
					seen[cl] = true
					c.Claims = append(c.Claims, cl)
				}
			}
		}
	}

	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(expiry(now, remember, expiresDays))
	return c
}

// expiry picks end of the current day, or a fixed number of days out
// when the user asked to be remembered.
func expiry(now time.Time, remember bool, expiresDays int) time.Time {
	if remember {
		return now.Add(time.Duration(expiresDays) * 24 * time.Hour)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, now.Location())
}
