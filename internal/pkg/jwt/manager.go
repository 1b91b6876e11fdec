package jwt

import (
	"time"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/domain/user"
	xerrors "backoffice-service/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Config holds the signing parameters for session tokens.
type Config struct {
	Secret      string
	Issuer      string
	ExpiresDays int
}

// Manager signs and verifies session tokens with a shared HS256 secret.
type Manager struct {
	secret      []byte
	issuer      string
	expiresDays int
}

func NewManager(cfg Config) *Manager {
	days := cfg.ExpiresDays
	if days <= 0 {
		days = 7
	}
	return &Manager{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		expiresDays: days,
	}
}

// Issue builds session claims for the user and signs them.
func (m *Manager) Issue(u *user.User, registry *claims.Registry, remember bool, now time.Time) (string, *Claims, error) {
	c := NewSessionClaims(u, registry, remember, m.expiresDays, now)
	c.Issuer = m.issuer
	c.ID = ulid.Make().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, xerrors.Wrap(err, "failed to sign session token")
	}
	return signed, c, nil
}

// Verify parses and validates a compact token. Any failure, whether a
// bad signature, garbage input or an expired token, surfaces as the
// same ErrUnauthenticated so callers leak nothing about the cause.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	var c Claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.ErrUnauthenticated
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, xerrors.ErrUnauthenticated
	}
	return &c, nil
}
