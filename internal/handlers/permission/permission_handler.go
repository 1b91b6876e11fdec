// internal/handlers/permission/permission_handler.go
package permission

import (
	"net/http"

	"backoffice-service/internal/domain/claims"
	"backoffice-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	registry *claims.Registry
}

func NewPermissionHandler(registry *claims.Registry) *PermissionHandler {
	return &PermissionHandler{registry: registry}
}

// List returns the claim catalog grouped per module, the shape the
// role editor renders.
func (h *PermissionHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "permissions retrieved", h.registry.GroupByModule())
}
