package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
)

// CatalogService serves the filtered product listing
type CatalogService struct {
	repo               domain.ProductRepository
	enableDebugLogging bool
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.ProductRepository, enableDebugLogging bool) *CatalogService {
	return &CatalogService{
		repo:               repo,
		enableDebugLogging: enableDebugLogging,
	}
}

// ListProducts returns every product matching filter. The filter is handed to
// the store as-is after validation; "All" as a category disables that predicate.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	if s.enableDebugLogging {
		log.Printf("[CATALOG] Listing products with filter: %s", describeFilter(filter))
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeFailure(err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Ping reports whether the catalog store is reachable
func (s *CatalogService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storeFailure(err)
	}
	return nil
}

func validateFilter(filter domain.ProductFilter) error {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must not be negative", domain.ErrInvalidRequest)
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", domain.ErrInvalidRequest)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return fmt.Errorf("%w: min_price %.2f exceeds max_price %.2f",
			domain.ErrInvalidRequest, *filter.MinPrice, *filter.MaxPrice)
	}
	return nil
}

// describeFilter renders the active predicates for logs
func describeFilter(filter domain.ProductFilter) string {
	desc := "{"
	sep := ""
	add := func(format string, args ...interface{}) {
		desc += sep + fmt.Sprintf(format, args...)
		sep = " "
	}
	if filter.ID != "" {
		add("id=%q", filter.ID)
	}
	if filter.Name != "" {
		add("name=%q", filter.Name)
	}
	if filter.HasCategory() {
		add("category=%q", filter.Category)
	}
	if filter.Type != "" {
		add("type=%q", filter.Type)
	}
	if filter.MinPrice != nil {
		add("min_price=%.2f", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("max_price=%.2f", *filter.MaxPrice)
	}
	return desc + "}"
}
