// internal/handlers/role/role_handler.go
package role

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice-service/internal/domain/role"
	"backoffice-service/internal/pkg/response"
	rolesUsecase "backoffice-service/internal/service/roles"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoleHandler struct {
	roleService *rolesUsecase.Service
	logger      *zap.Logger
}

func NewRoleHandler(roleService *rolesUsecase.Service, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// List returns one page of roles
func (h *RoleHandler) List(c *gin.Context) {
	f := role.ListFilters{
		FilterByName: strings.TrimSpace(c.Query("filterByName")),
		SortBy:       c.Query("sortBy"),
		SortDir:      parseSortDir(c.Query("sortDir")),
		Page:         parseIntQuery(c, "page"),
		PerPage:      parseIntQuery(c, "perPage"),
	}

	result, err := h.roleService.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "roles retrieved", result)
}

// Dropdown returns the reduced projection for selects
func (h *RoleHandler) Dropdown(c *gin.Context) {
	options, err := h.roleService.Dropdown(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "roles retrieved", options)
}

// Get returns one role
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "role retrieved", r)
}

// Create adds a role
func (h *RoleHandler) Create(c *gin.Context) {
	var req role.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("role created", zap.Int64("role_id", created.ID), zap.String("name", created.Name))
	response.Success(c, http.StatusCreated, "role created", created)
}

// Update patches a role
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req role.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "role updated", updated)
}

// Delete removes a role
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("role deleted", zap.Int64("role_id", id))
	response.Success(c, http.StatusOK, "role deleted", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func parseSortDir(dir string) int {
	if strings.EqualFold(dir, "desc") {
		return -1
	}
	return 1
}
