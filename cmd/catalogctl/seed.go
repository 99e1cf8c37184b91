package main

import (
	"fmt"
	"log"

	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/catalogfile"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/catalogstore"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the catalog schema and load products from a YAML file",
	Long: `seed creates the products table (postgres) if needed and upserts every
product in the given menu file. Existing products with the same id are
replaced; products not in the file are left alone.`,
	Example: "  catalogctl seed --file data/menu.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		products, err := catalogfile.Load(seedFile)
		if err != nil {
			return err
		}

		store, err := catalogstore.Open(cfg.Store, debug)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		if err := store.Initialize(ctx); err != nil {
			return fmt.Errorf("initialize catalog: %w", err)
		}
		if err := store.Upsert(ctx, products); err != nil {
			return fmt.Errorf("upsert products: %w", err)
		}

		log.Printf("[SEED] Loaded %d products from %s", len(products), seedFile)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(products))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "data/menu.yaml", "menu file to load")
}
