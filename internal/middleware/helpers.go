// internal/middleware/helpers.go
package middleware

import (
	"backoffice-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// ClaimsFrom returns the verified token claims, or nil for anonymous
// requests.
func ClaimsFrom(c *gin.Context) *jwt.Claims {
	claims, err := GateFrom(c).Claims()
	if err != nil {
		return nil
	}
	return claims
}

// UserID gets the authenticated user's ID from the request token
func UserID(c *gin.Context) (int64, bool) {
	claims := ClaimsFrom(c)
	if claims == nil {
		return 0, false
	}
	return claims.User.ID, true
}

// IsAuthenticated checks if request carried a valid token
func IsAuthenticated(c *gin.Context) bool {
	return GateFrom(c).Authenticated()
}

// IsSuperAdmin checks the token's super admin flag
func IsSuperAdmin(c *gin.Context) bool {
	claims := ClaimsFrom(c)
	return claims != nil && claims.IsSuperAdmin
}

// IsAdmin checks if the token carries the admin role or better
func IsAdmin(c *gin.Context) bool {
	claims := ClaimsFrom(c)
	return claims != nil && (claims.IsSuperAdmin || claims.IsAdmin)
}
