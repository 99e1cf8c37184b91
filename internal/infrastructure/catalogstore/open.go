// Package catalogstore opens the catalog store selected by configuration.
package catalogstore

import (
	"fmt"
	"io"
	"log"

	"github.com/AnujNegi10/kfc-v3-new/config"
	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/badger"
	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/postgres"
)

// Store is what every catalog driver provides
type Store interface {
	domain.ProductRepository
	domain.ProductWriter
	io.Closer
}

var (
	_ Store = (*postgres.Store)(nil)
	_ Store = (*badger.Store)(nil)
)

// Open returns the store for cfg.Driver. Postgres connections are lazy, so a
// nil error does not mean the server is reachable.
func Open(cfg config.StoreConfig, debug bool) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pgCfg := cfg.Postgres()
		store, err := postgres.Open(pgCfg)
		if err != nil {
			return nil, err
		}
		store.SetDebug(debug)
		log.Printf("[STORE] Postgres catalog: %s:%d/%s", pgCfg.Host, pgCfg.Port, pgCfg.Name)
		return store, nil

	case config.DriverBadger:
		store, err := badger.Open(cfg.Path, cfg.InMemory, debug)
		if err != nil {
			return nil, err
		}
		if cfg.InMemory {
			log.Printf("[STORE] Badger catalog: in-memory")
		} else {
			log.Printf("[STORE] Badger catalog: %s", cfg.Path)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
