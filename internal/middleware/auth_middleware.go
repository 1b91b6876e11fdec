// internal/middleware/auth_middleware.go
package middleware

import (
	"strings"

	"backoffice-service/internal/domain/user"
	"backoffice-service/internal/pkg/authz"
	"backoffice-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const gateKey = "authz_gate"

type AuthMiddleware struct {
	verifier authz.Verifier
	users    user.Repository
}

func NewAuthMiddleware(verifier authz.Verifier, users user.Repository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// Gate attaches an authorization gate built from the bearer token to
// every request. It never aborts; anonymous requests carry an
// anonymous gate so downstream checks decide per route.
func (m *AuthMiddleware) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := authz.New(m.verifier, m.users, extractToken(c))
		c.Set(gateKey, gate)
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests.
// MUST be used after Gate()
func (m *AuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GateFrom(c).RequireAuthenticated(); err != nil {
			response.FromError(c, err)
			return
		}
		c.Next()
	}
}

// RequirePermission rejects requests whose token does not hold the
// given claim. MUST be used after Gate()
func (m *AuthMiddleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GateFrom(c).RequirePermission(permission); err != nil {
			response.FromError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAny passes when the token holds at least one of the claims.
// MUST be used after Gate()
func (m *AuthMiddleware) RequireAny(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GateFrom(c).RequireAny(permissions...); err != nil {
			response.FromError(c, err)
			return
		}
		c.Next()
	}
}

// GateFrom returns the request's gate. Routes registered without the
// Gate middleware get an anonymous gate instead of a panic.
func GateFrom(c *gin.Context) *authz.Gate {
	if v, exists := c.Get(gateKey); exists {
		if gate, ok := v.(*authz.Gate); ok {
			return gate
		}
	}
	return authz.New(nil, nil, "")
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	// Try header first
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param for websocket handshakes
	token := c.Query("token")
	if token != "" {
		return token
	}

	return ""
}
