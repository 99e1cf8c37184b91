package http

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"github.com/gin-gonic/gin"
)

const serviceName = "kiosk-catalog"

// ProductLister serves the filtered listing endpoint
type ProductLister interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Ping(ctx context.Context) error
}

// ProductSearcher serves the fuzzy search endpoint
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog ProductLister
	search  ProductSearcher
	version string
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog ProductLister, search ProductSearcher, version string) *Handler {
	return &Handler{
		catalog: catalog,
		search:  search,
		version: version,
	}
}

// HealthCheck reports service status and whether the catalog store answers
func (h *Handler) HealthCheck(c *gin.Context) {
	store := "up"
	status := http.StatusOK
	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		log.Printf("[HEALTH] Store ping failed: %v", err)
		store = "down"
		status = http.StatusServiceUnavailable
	}

	health := "healthy"
	if status != http.StatusOK {
		health = "degraded"
	}

	c.JSON(status, gin.H{
		"status":  health,
		"service": serviceName,
		"version": h.version,
		"store":   store,
	})
}

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchProducts handles GET /api/products/search?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok {
		respondError(c, fmt.Errorf("%w: query parameter 'q' is required", domain.ErrInvalidRequest))
		return
	}

	products, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func parseFilter(c *gin.Context) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		ID:       strings.TrimSpace(c.Query("id")),
		Name:     strings.TrimSpace(c.Query("name")),
		Category: strings.TrimSpace(c.Query("category")),
		Type:     strings.TrimSpace(c.Query("type")),
	}

	var err error
	if filter.MinPrice, err = parsePrice(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(c, "max_price"); err != nil {
		return filter, err
	}
	return filter, nil
}

// parsePrice returns nil when the parameter is absent or empty
func parsePrice(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidRequest, name, raw)
	}
	return &value, nil
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
	case domain.KindInvalidRequest:
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
