package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/partsflow/backend/internal/domain"
	"github.com/partsflow/backend/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	procurement *usecase.ProcurementService
	catalog     domain.Catalog
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(procurement *usecase.ProcurementService, catalog domain.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		procurement: procurement,
		catalog:     catalog,
		logger:      logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "partsflow-backend",
		"version": "1.0.0",
	})
}

// Procure runs the procurement pipeline for a free-text query
func (h *Handler) Procure(c *gin.Context) {
	var request domain.ProcurementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	response, err := h.procurement.Process(c.Request.Context(), &request)
	if err != nil {
		if err == domain.ErrMissingQuery {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		h.logger.Error("procurement pipeline failed",
			zap.String("query", request.Query),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error processing procurement request",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListProducts returns catalog products, optionally truncated by ?limit=N
func (h *Handler) ListProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	products := h.catalog.Products(limit)

	var limitField interface{} = "all"
	if limit > 0 {
		limitField = limit
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
		"limit":    limitField,
	})
}

// ListSuppliers returns all catalog suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers := h.catalog.Suppliers()
	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"total":     len(suppliers),
	})
}
