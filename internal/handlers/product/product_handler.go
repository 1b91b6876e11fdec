// internal/handlers/product/product_handler.go
package product

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice-service/internal/domain/product"
	"backoffice-service/internal/pkg/response"
	productsUsecase "backoffice-service/internal/service/products"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *productsUsecase.Service
	logger         *zap.Logger
}

func NewProductHandler(productService *productsUsecase.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// List returns one page of products
func (h *ProductHandler) List(c *gin.Context) {
	f := product.ListFilters{
		FilterByName: strings.TrimSpace(c.Query("filterByName")),
		SortBy:       c.Query("sortBy"),
		SortDir:      parseSortDir(c.Query("sortDir")),
		Page:         parseIntQuery(c, "page"),
		PerPage:      parseIntQuery(c, "perPage"),
	}

	result, err := h.productService.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", result)
}

// Dropdown returns the reduced projection for selects
func (h *ProductHandler) Dropdown(c *gin.Context) {
	options, err := h.productService.Dropdown(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", options)
}

// Get returns one product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", p)
}

// Create adds a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("product created", zap.Int64("product_id", created.ID), zap.String("name", created.Name))
	response.Success(c, http.StatusCreated, "product created", created)
}

// Update patches a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req product.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "product updated", updated)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("product deleted", zap.Int64("product_id", id))
	response.Success(c, http.StatusOK, "product deleted", nil)
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
