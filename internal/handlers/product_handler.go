package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/middleware"
	"catalog-api/internal/models"
	"catalog-api/internal/repository"
)

const (
	msgCreateFailed = "Failed to create product"
	msgListFailed   = "Failed to fetch products"
	msgNotFound     = "Product not found"
	msgFetchFailed  = "Error fetching product"
	msgUpdateFailed = "Error updating product"
	msgDeleteFailed = "Error deleting product"
	msgInvalidBody  = "invalid request body"
	msgDeleted      = "Product deleted"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type ProductHandler struct {
	store  repository.ProductStore
	logger *slog.Logger
}

func NewProductHandler(store repository.ProductStore, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		store:  store,
		logger: logger,
	}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}

	product, err := h.store.Insert(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /products?status=&startDate=&endDate=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, err := ParseProductFilter(c.Request.URL.Query())
	if err != nil {
		h.respondError(c, err, msgListFailed)
		return
	}

	products, err := h.store.Query(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, msgFetchFailed)
		return
	}

	c.JSON(http.StatusOK, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	// An empty body is an update with no fields.
	if err := c.ShouldBindJSON(&update); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}

	product, err := h.store.UpdateByID(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.respondError(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if _, err := h.store.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msgDeleted})
}

// GET /health
func (h *ProductHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Error("store ping failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("error", err),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MethodNotAllowed writes the 405 body. The router has already set Allow to
// the methods registered for the path.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error: fmt.Sprintf("Method %s Not Allowed", c.Request.Method),
	})
}

// respondError maps validation failures to 400 and missing records to 404.
// Anything else is logged and reported as 500 with the generic message.
func (h *ProductHandler) respondError(c *gin.Context, err error, message string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	default:
		h.logger.Error(message,
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
	}
}
