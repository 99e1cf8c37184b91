package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
)

// MockProductRepository is an in-memory implementation of domain.ProductRepository
type MockProductRepository struct {
	products      []domain.Product
	findError     error
	listAllError  error
	listError     error
	pingError     error
	findCalls     [][]string
	listAllCalled bool
	lastFilter    *domain.ProductFilter
}

func NewMockProductRepository(names ...string) *MockProductRepository {
	repo := &MockProductRepository{}
	for i, name := range names {
		repo.products = append(repo.products, domain.Product{
			ID:    string(rune('a' + i)),
			Name:  name,
			Price: float64(100 + i),
		})
	}
	return repo
}

func (m *MockProductRepository) FindByNameContaining(ctx context.Context, fragments ...string) ([]domain.Product, error) {
	m.findCalls = append(m.findCalls, fragments)
	if m.findError != nil {
		return nil, m.findError
	}

	var found []domain.Product
	for _, p := range m.products {
		name := strings.ToLower(p.Name)
		for _, fragment := range fragments {
			if strings.Contains(name, strings.ToLower(fragment)) {
				found = append(found, p)
				break
			}
		}
	}
	return found, nil
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	m.listAllCalled = true
	if m.listAllError != nil {
		return nil, m.listAllError
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	m.lastFilter = &filter
	if m.listError != nil {
		return nil, m.listError
	}
	return m.products, nil
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	return m.pingError
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string]interface{}
	setError error
	gets     int
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockSearchMetrics records every observation
type MockSearchMetrics struct {
	outcomes []string
	results  []int
}

func (m *MockSearchMetrics) ObserveSearch(outcome string, duration time.Duration, results int) {
	m.outcomes = append(m.outcomes, outcome)
	m.results = append(m.results, results)
}

func productNames(products []domain.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
