package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
)

// minCoverage is the fraction of query tokens a fallback candidate must contain
const minCoverage = 0.5

// nameCacheKeyPrefix namespaces normalized product names in the shared cache
const nameCacheKeyPrefix = "normalized-name:"

// Search outcomes reported to SearchMetrics
const (
	OutcomeDirect   = "direct"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Candidate pairs a product with the scores computed for it during one search
type Candidate struct {
	Product        domain.Product
	NormalizedName string
	Coverage       float64
	Rank           int
}

// searchState is a step of the search pipeline
type searchState int

const (
	stateDirectMatch searchState = iota
	stateFallbackScan
	stateThreshold
	stateRank
	stateEmpty
	stateRanked
)

func (s searchState) String() string {
	switch s {
	case stateDirectMatch:
		return "direct-match"
	case stateFallbackScan:
		return "fallback-scan"
	case stateThreshold:
		return "threshold"
	case stateRank:
		return "rank"
	case stateEmpty:
		return "empty"
	case stateRanked:
		return "ranked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s searchState) terminal() bool {
	return s == stateEmpty || s == stateRanked
}

// searchRun holds everything derived for a single Search call
type searchRun struct {
	raw         string
	normalized  string
	queryTokens TokenSet
	candidates  []Candidate
	outcome     string
}

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	NameCacheTTL       time.Duration
	EnableDebugLogging bool
}

// SearchService resolves free-text product names against the catalog
type SearchService struct {
	repo               domain.ProductRepository
	cache              domain.CacheRepository
	metrics            domain.SearchMetrics
	nameCacheTTL       time.Duration
	enableDebugLogging bool
}

// NewSearchService creates a new search service. cache and metrics may be nil.
func NewSearchService(
	repo domain.ProductRepository,
	cache domain.CacheRepository,
	metrics domain.SearchMetrics,
	config SearchServiceConfig,
) *SearchService {
	ttl := config.NameCacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &SearchService{
		repo:               repo,
		cache:              cache,
		metrics:            metrics,
		nameCacheTTL:       ttl,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search returns the catalog products matching query, best first.
// Flow: direct substring match -> (fallback token-overlap scan -> threshold) -> rank.
// An empty result is not an error. Any store failure aborts the whole search
// with domain.ErrStoreUnavailable.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	start := time.Now()

	run := &searchRun{raw: strings.TrimSpace(query)}
	run.normalized = Normalize(run.raw)
	run.queryTokens = Tokenize(run.normalized)

	if s.enableDebugLogging {
		log.Printf("[SEARCH] Query: %q (normalized: %q)", run.raw, run.normalized)
	}

	state := stateDirectMatch
	if run.normalized == "" {
		state = stateEmpty
	}

	for !state.terminal() {
		next, err := s.step(ctx, state, run)
		if err != nil {
			log.Printf("[SEARCH] %s failed for %q: %v", state, run.raw, err)
			s.observe(OutcomeError, start, 0)
			return nil, err
		}
		if s.enableDebugLogging {
			log.Printf("[SEARCH] %s -> %s (%d candidates)", state, next, len(run.candidates))
		}
		state = next
	}

	if state == stateEmpty {
		s.observe(OutcomeEmpty, start, 0)
		return []domain.Product{}, nil
	}

	results := make([]domain.Product, len(run.candidates))
	for i, c := range run.candidates {
		results[i] = c.Product
	}

	s.observe(run.outcome, start, len(results))
	return results, nil
}

// step runs one pipeline state and returns the state that follows it
func (s *SearchService) step(ctx context.Context, state searchState, run *searchRun) (searchState, error) {
	switch state {
	case stateDirectMatch:
		return s.directMatch(ctx, run)
	case stateFallbackScan:
		return s.fallbackScan(ctx, run)
	case stateThreshold:
		return s.threshold(run), nil
	case stateRank:
		return s.rank(run), nil
	default:
		return state, fmt.Errorf("search pipeline has no transition from %s", state)
	}
}

// directMatch asks the store for names containing the raw or normalized query.
// Direct hits skip overlap filtering entirely.
func (s *SearchService) directMatch(ctx context.Context, run *searchRun) (searchState, error) {
	fragments := []string{run.raw}
	if !strings.EqualFold(run.raw, run.normalized) {
		fragments = append(fragments, run.normalized)
	}

	products, err := s.repo.FindByNameContaining(ctx, fragments...)
	if err != nil {
		return stateDirectMatch, storeFailure(err)
	}

	if len(products) == 0 {
		return stateFallbackScan, nil
	}

	run.candidates = make([]Candidate, len(products))
	for i, p := range products {
		run.candidates[i] = Candidate{Product: p, NormalizedName: s.normalizeName(ctx, p.Name)}
	}
	run.outcome = OutcomeDirect

	return stateRank, nil
}

// fallbackScan scores every catalog entry by token overlap with the query
func (s *SearchService) fallbackScan(ctx context.Context, run *searchRun) (searchState, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return stateFallbackScan, storeFailure(err)
	}

	run.candidates = make([]Candidate, len(products))
	for i, p := range products {
		name := s.normalizeName(ctx, p.Name)
		run.candidates[i] = Candidate{
			Product:        p,
			NormalizedName: name,
			Coverage:       Overlap(run.queryTokens, Tokenize(name)),
		}
	}
	run.outcome = OutcomeFallback

	return stateThreshold, nil
}

// threshold drops fallback candidates below minCoverage and orders the rest
// by coverage, which is the order rank ties fall back to
func (s *SearchService) threshold(run *searchRun) searchState {
	kept := run.candidates[:0]
	for _, c := range run.candidates {
		if c.Coverage >= minCoverage {
			kept = append(kept, c)
		}
	}
	run.candidates = kept

	if len(kept) == 0 {
		return stateEmpty
	}

	sort.SliceStable(run.candidates, func(i, j int) bool {
		return run.candidates[i].Coverage > run.candidates[j].Coverage
	})

	return stateRank
}

// rank orders the surviving candidates by rank score, keeping prior order on ties
func (s *SearchService) rank(run *searchRun) searchState {
	comboIntent := HasComboIntent(run.normalized)

	for i := range run.candidates {
		run.candidates[i].Rank = RankScore(run.candidates[i].NormalizedName, run.normalized, comboIntent)
	}

	sort.SliceStable(run.candidates, func(i, j int) bool {
		return run.candidates[i].Rank > run.candidates[j].Rank
	})

	if s.enableDebugLogging {
		for _, c := range run.candidates {
			log.Printf("[SEARCH] %q | coverage: %.2f | rank: %d", c.NormalizedName, c.Coverage, c.Rank)
		}
	}

	return stateRanked
}

// normalizeName returns Normalize(name), consulting the name cache when one is configured
func (s *SearchService) normalizeName(ctx context.Context, name string) string {
	if s.cache == nil {
		return Normalize(name)
	}

	key := nameCacheKeyPrefix + name
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if normalized, ok := cached.(string); ok {
			return normalized
		}
	}

	normalized := Normalize(name)
	if err := s.cache.Set(ctx, key, normalized, s.nameCacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[SEARCH] Failed to cache normalized name %q: %v", name, err)
	}

	return normalized
}

func (s *SearchService) observe(outcome string, start time.Time, results int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSearch(outcome, time.Since(start), results)
}

// storeFailure makes sure a repository error carries domain.ErrStoreUnavailable
func storeFailure(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
