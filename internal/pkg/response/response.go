// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "backoffice-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// Abort first so later middlewares never write a second body
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// FromError is the single translation point from service errors to
// HTTP. Handlers call it once per failed request; everything that is
// not a known kind surfaces as a generic 500 so internals never leak.
func FromError(c *gin.Context, err error) {
	var fields *xerrors.FieldErrors
	if errors.As(err, &fields) {
		Error(c, http.StatusBadRequest, "validation failed", nil, gin.H{"fields": fields.Fields})
		return
	}

	switch {
	case errors.Is(err, xerrors.ErrUnauthenticated):
		Error(c, http.StatusUnauthorized, "authentication required", err)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, xerrors.ErrConflict), errors.Is(err, xerrors.ErrDuplicateEntry):
		Error(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, "too many requests", err)
	case errors.Is(err, xerrors.ErrInvalidInput), errors.Is(err, xerrors.ErrBadRequest):
		Error(c, http.StatusBadRequest, "bad request", err)
	default:
		Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
