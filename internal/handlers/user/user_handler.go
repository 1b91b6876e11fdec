// internal/handlers/user/user_handler.go
package user

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice-service/internal/domain/user"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/pkg/response"
	usersUsecase "backoffice-service/internal/service/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *usersUsecase.Service
	logger      *zap.Logger
}

func NewUserHandler(userService *usersUsecase.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List returns one page of users
func (h *UserHandler) List(c *gin.Context) {
	f := user.ListFilters{
		FilterByName:   strings.TrimSpace(c.Query("filterByName")),
		FilterByEmail:  strings.TrimSpace(c.Query("filterByEmail")),
		SortBy:         c.Query("sortBy"),
		SortDir:        parseSortDir(c.Query("sortDir")),
		Page:           parseIntQuery(c, "page"),
		PerPage:        parseIntQuery(c, "perPage"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}

	result, err := h.userService.List(c.Request.Context(), f, middleware.IsSuperAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", result)
}

// Dropdown returns the reduced projection for selects
func (h *UserHandler) Dropdown(c *gin.Context) {
	options, err := h.userService.Dropdown(c.Request.Context(), middleware.IsSuperAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", options)
}

// Get returns one user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.userService.Get(c.Request.Context(), id, middleware.IsSuperAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", u)
}

// Create adds a user
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.userService.Create(c.Request.Context(), req, middleware.IsSuperAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("user created", zap.Int64("user_id", created.ID), zap.String("email", created.Email))
	response.Success(c, http.StatusCreated, "user created", created)
}

// Update patches a user
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req user.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), id, req, middleware.IsSuperAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user updated", updated)
}

// Delete soft-deletes a user
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id, middleware.IsSuperAdmin(c)); err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("user deleted", zap.Int64("user_id", id))
	response.Success(c, http.StatusOK, "user deleted", nil)
}

// Restore brings a soft-deleted user back
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.Restore(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user restored", nil)
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
