package main

import (
	"encoding/json"
	"strings"

	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/cache"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/catalogstore"
	"github.com/AnujNegi10/kfc-v3-new/internal/usecase"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a fuzzy product search and print the ranked results as JSON",
	Example: `  catalogctl search "7 up"
  catalogctl search zinger combo`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := catalogstore.Open(cfg.Store, debug)
		if err != nil {
			return err
		}
		defer store.Close()

		memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
		defer memoryCache.Close()

		service := usecase.NewSearchService(store, memoryCache, nil, usecase.SearchServiceConfig{
			NameCacheTTL:       cfg.Cache.TTL,
			EnableDebugLogging: cfg.Search.EnableDebugLogging,
		})

		products, err := service.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	},
}
