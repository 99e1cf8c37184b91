package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchService(t *testing.T) {
	t.Run("uses default name cache TTL when zero", func(t *testing.T) {
		svc := NewSearchService(NewMockProductRepository(), nil, nil, SearchServiceConfig{})
		assert.Equal(t, time.Hour, svc.nameCacheTTL)
	})

	t.Run("keeps custom values", func(t *testing.T) {
		svc := NewSearchService(NewMockProductRepository(), nil, nil, SearchServiceConfig{
			NameCacheTTL:       5 * time.Minute,
			EnableDebugLogging: true,
		})
		assert.Equal(t, 5*time.Minute, svc.nameCacheTTL)
		assert.True(t, svc.enableDebugLogging)
	})
}

func TestSearch_DirectMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("plain product ranks above its combo", func(t *testing.T) {
		repo := NewMockProductRepository("Chicken Combo Meal", "Chicken")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "chicken")

		require.NoError(t, err)
		assert.Equal(t, []string{"Chicken", "Chicken Combo Meal"}, productNames(results))
		assert.False(t, repo.listAllCalled, "direct hits must not trigger a full scan")
	})

	t.Run("exact match ranks first", func(t *testing.T) {
		repo := NewMockProductRepository("Zinger Burger Combo", "Mighty Zinger Burger", "Zinger Burger")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "Zinger Burger")

		require.NoError(t, err)
		assert.Equal(t, []string{"Zinger Burger", "Mighty Zinger Burger", "Zinger Burger Combo"}, productNames(results))
	})

	t.Run("queries the store with raw and normalized text", func(t *testing.T) {
		repo := NewMockProductRepository("7UP", "Pepsi")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "  7 up ")

		require.NoError(t, err)
		require.Len(t, repo.findCalls, 1)
		assert.Equal(t, []string{"7 up", "7UP"}, repo.findCalls[0])
		assert.Equal(t, []string{"7UP"}, productNames(results))
	})

	t.Run("sends a single fragment when normalization only changes case", func(t *testing.T) {
		repo := NewMockProductRepository("Pepsi")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		_, err := svc.Search(ctx, "pepsi")

		require.NoError(t, err)
		require.Len(t, repo.findCalls, 1)
		assert.Equal(t, []string{"pepsi"}, repo.findCalls[0])
	})

	t.Run("direct matches skip overlap filtering", func(t *testing.T) {
		repo := NewMockProductRepository("Krushers Chocolash Shake")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "ash")

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("equal scores keep store order", func(t *testing.T) {
		repo := NewMockProductRepository("Pepsi Can", "Fanta Can")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "can")

		require.NoError(t, err)
		assert.Equal(t, []string{"Pepsi Can", "Fanta Can"}, productNames(results))
	})

	t.Run("combo intent lifts the bundle penalty", func(t *testing.T) {
		repo := NewMockProductRepository("Zinger Combo For Two", "Zinger Combo")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{EnableDebugLogging: true})

		results, err := svc.Search(ctx, "zinger combo")

		require.NoError(t, err)
		assert.Equal(t, []string{"Zinger Combo", "Zinger Combo For Two"}, productNames(results))
	})
}

func TestSearch_FallbackScan(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps candidates covering at least half the query", func(t *testing.T) {
		repo := NewMockProductRepository("Pepsi", "Veg Zinger Burger", "Zinger Burger", "Chicken Zinger Combo")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "spicy zinger burger")

		require.NoError(t, err)
		assert.True(t, repo.listAllCalled)
		assert.Equal(t, []string{"Zinger Burger", "Veg Zinger Burger"}, productNames(results))
	})

	t.Run("coverage of exactly one half is retained", func(t *testing.T) {
		repo := NewMockProductRepository("Zinger Burger", "Pepsi")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "zinger wrap")

		require.NoError(t, err)
		assert.Equal(t, []string{"Zinger Burger"}, productNames(results))
	})

	t.Run("matches across and/ampersand spellings", func(t *testing.T) {
		repo := NewMockProductRepository("Chicken & Rice Bowl", "Pepsi")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "chicken and rice")

		require.NoError(t, err)
		assert.Equal(t, []string{"Chicken & Rice Bowl"}, productNames(results))
	})

	t.Run("returns empty result when nothing meets the threshold", func(t *testing.T) {
		metrics := &MockSearchMetrics{}
		repo := NewMockProductRepository("Pepsi", "Zinger Burger")
		svc := NewSearchService(repo, nil, metrics, SearchServiceConfig{})

		results, err := svc.Search(ctx, "margherita pizza")

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
		assert.Equal(t, []string{OutcomeEmpty}, metrics.outcomes)
	})

	t.Run("ties in rank fall back to coverage order", func(t *testing.T) {
		// Both names are 9 characters and neither contains the query, so
		// rank ties and the higher coverage candidate must stay first.
		repo := NewMockProductRepository("Hot Wings", "Hot Dip X")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "hot dip x wings")

		require.NoError(t, err)
		assert.Equal(t, []string{"Hot Dip X", "Hot Wings"}, productNames(results))
	})
}

func TestSearch_EmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		repo := NewMockProductRepository("Pepsi")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(context.Background(), query)

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
		assert.Empty(t, repo.findCalls, "blank query must not reach the store")
		assert.False(t, repo.listAllCalled)
	}
}

func TestSearch_StoreFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("direct match failure aborts", func(t *testing.T) {
		metrics := &MockSearchMetrics{}
		repo := NewMockProductRepository("Pepsi")
		repo.findError = errors.New("dial tcp 127.0.0.1:5433: connection refused")
		svc := NewSearchService(repo, nil, metrics, SearchServiceConfig{})

		results, err := svc.Search(ctx, "pepsi")

		assert.Nil(t, results)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
		assert.False(t, repo.listAllCalled)
		assert.Equal(t, []string{OutcomeError}, metrics.outcomes)
	})

	t.Run("fallback scan failure aborts", func(t *testing.T) {
		repo := NewMockProductRepository("Pepsi")
		repo.listAllError = errors.New("relation \"products\" does not exist")
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		results, err := svc.Search(ctx, "zinger")

		assert.Nil(t, results)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("already classified errors are not wrapped twice", func(t *testing.T) {
		repo := NewMockProductRepository()
		repo.findError = domain.ErrStoreUnavailable
		svc := NewSearchService(repo, nil, nil, SearchServiceConfig{})

		_, err := svc.Search(ctx, "pepsi")

		assert.Equal(t, domain.ErrStoreUnavailable, err)
	})
}

func TestSearch_NameCache(t *testing.T) {
	ctx := context.Background()

	t.Run("stores normalized names and reuses them", func(t *testing.T) {
		cache := NewMockCacheRepository()
		repo := NewMockProductRepository("7 Up Can")
		svc := NewSearchService(repo, cache, nil, SearchServiceConfig{})

		first, err := svc.Search(ctx, "7up")
		require.NoError(t, err)
		assert.Equal(t, "7UP CAN", cache.data[nameCacheKeyPrefix+"7 Up Can"])

		second, err := svc.Search(ctx, "7up")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("cache write failures do not fail the search", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("cache full")
		repo := NewMockProductRepository("Pepsi")
		svc := NewSearchService(repo, cache, nil, SearchServiceConfig{EnableDebugLogging: true})

		results, err := svc.Search(ctx, "pepsi")

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestSearch_Metrics(t *testing.T) {
	metrics := &MockSearchMetrics{}
	repo := NewMockProductRepository("Pepsi", "Zinger Burger")
	svc := NewSearchService(repo, nil, metrics, SearchServiceConfig{})

	_, err := svc.Search(context.Background(), "pepsi")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "zinger wrap")
	require.NoError(t, err)

	assert.Equal(t, []string{OutcomeDirect, OutcomeFallback}, metrics.outcomes)
	assert.Equal(t, []int{1, 1}, metrics.results)
}

func TestSearchStateString(t *testing.T) {
	assert.Equal(t, "direct-match", stateDirectMatch.String())
	assert.Equal(t, "ranked", stateRanked.String())
	assert.True(t, stateEmpty.terminal())
	assert.False(t, stateThreshold.terminal())
}
