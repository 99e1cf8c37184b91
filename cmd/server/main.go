package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/config"
	httpDelivery "github.com/AnujNegi10/kfc-v3-new/internal/delivery/http"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/cache"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/catalogstore"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/metrics"
	"github.com/AnujNegi10/kfc-v3-new/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Kiosk Catalog v%s", version)
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Driver: %s", cfg.Store.Driver)

	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	store, err := catalogstore.Open(cfg.Store, debug)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		log.Printf("WARNING: catalog store not reachable yet: %v (requests will fail with 503 until it is)", err)
	}
	cancel()

	memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	defer memoryCache.Close()
	log.Printf("Cache Type: %s (TTL: %s)", cfg.Cache.Type, cfg.Cache.TTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewSearchRecorder(registry)
	if err != nil {
		log.Fatalf("Failed to register search metrics: %v", err)
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(store, cfg.Search.EnableDebugLogging)
	searchService := usecase.NewSearchService(
		store,
		memoryCache,
		recorder,
		usecase.SearchServiceConfig{
			NameCacheTTL:       cfg.Cache.TTL,
			EnableDebugLogging: cfg.Search.EnableDebugLogging,
		},
	)

	log.Printf("Search: debug=%v, rate limit=%d/min per IP", cfg.Search.EnableDebugLogging, cfg.RateLimit.PerIP)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, searchService, version)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		log.Printf("Metrics exposed at %s", cfg.Metrics.Path)
	}

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, metricsHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
