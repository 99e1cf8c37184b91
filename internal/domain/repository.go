package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductRepository is the read side of the catalog store.
// Implementations wrap every failure in ErrStoreUnavailable.
type ProductRepository interface {
	// FindByNameContaining returns products whose name contains any of the
	// given fragments, compared case-insensitively.
	FindByNameContaining(ctx context.Context, fragments ...string) ([]Product, error)

	// ListAll returns the whole catalog.
	ListAll(ctx context.Context) ([]Product, error)

	// List returns the products matching every predicate in filter.
	List(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// ProductWriter is implemented by stores that can be seeded
type ProductWriter interface {
	Initialize(ctx context.Context) error
	Upsert(ctx context.Context, products []Product) error
}

// SearchMetrics receives one observation per completed search
type SearchMetrics interface {
	ObserveSearch(outcome string, duration time.Duration, results int)
}
