package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const productKeyPrefix = "product:"

var errClosed = errors.New("badger database is closed")

// Store is a domain.ProductRepository kept in an embedded BadgerDB.
// Products are stored as JSON under "product:<id>", so iteration order is id order.
type Store struct {
	db    *badger.DB
	debug bool
}

// logAdapter routes badger's logs through the standard logger
type logAdapter struct {
	verbose bool
}

var _ badger.Logger = (*logAdapter)(nil)

func (l *logAdapter) Errorf(msg string, items ...interface{}) {
	log.Printf("[BADGER] ERROR "+msg, items...)
}

func (l *logAdapter) Warningf(msg string, items ...interface{}) {
	log.Printf("[BADGER] WARN "+msg, items...)
}

func (l *logAdapter) Infof(msg string, items ...interface{}) {
	if l.verbose {
		log.Printf("[BADGER] "+msg, items...)
	}
}

func (l *logAdapter) Debugf(msg string, items ...interface{}) {
	if l.verbose {
		log.Printf("[BADGER] DEBUG "+msg, items...)
	}
}

// Open opens the catalog at path, creating the directory if needed.
// With inMemory set the path is ignored and nothing touches disk.
func Open(path string, inMemory bool, debug bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &logAdapter{verbose: debug}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger catalog: %w", err)
	}

	return &Store{db: db, debug: debug}, nil
}

// Close closes the database. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is still open
func (s *Store) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return unavailable(errClosed)
	}
	return nil
}

// FindByNameContaining returns products whose name contains any fragment, ignoring case
func (s *Store) FindByNameContaining(ctx context.Context, fragments ...string) ([]domain.Product, error) {
	lowered := make([]string, len(fragments))
	for i, f := range fragments {
		lowered[i] = strings.ToLower(f)
	}

	return s.scan(ctx, func(p domain.Product) bool {
		name := strings.ToLower(p.Name)
		for _, f := range lowered {
			if strings.Contains(name, f) {
				return true
			}
		}
		return false
	})
}

// ListAll returns the whole catalog
func (s *Store) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.scan(ctx, func(domain.Product) bool { return true })
}

// List returns products matching every populated predicate of filter
func (s *Store) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.scan(ctx, func(p domain.Product) bool { return matchesFilter(p, filter) })
}

// matchesFilter mirrors the SQL predicates of the postgres store
func matchesFilter(p domain.Product, filter domain.ProductFilter) bool {
	if filter.ID != "" && p.ID != filter.ID {
		return false
	}
	if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.HasCategory() && !strings.EqualFold(p.Category, filter.Category) {
		return false
	}
	if filter.Type != "" && !strings.EqualFold(p.Type, filter.Type) {
		return false
	}
	if filter.MinPrice != nil && p.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
		return false
	}
	return true
}

// scan iterates every product in key order and keeps those accepted by keep
func (s *Store) scan(ctx context.Context, keep func(domain.Product) bool) ([]domain.Product, error) {
	if s.db.IsClosed() {
		return nil, unavailable(errClosed)
	}

	products := []domain.Product{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(productKeyPrefix)
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var p domain.Product
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", iter.Item().Key(), err)
			}

			if keep(p) {
				products = append(products, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, unavailable(err)
	}

	if s.debug {
		log.Printf("[BADGER] Scan returned %d products", len(products))
	}
	return products, nil
}

// Initialize is a no-op; badger needs no schema
func (s *Store) Initialize(ctx context.Context) error {
	return s.Ping(ctx)
}

// Upsert writes products in a single batch, replacing any with the same id
func (s *Store) Upsert(ctx context.Context, products []domain.Product) error {
	if s.db.IsClosed() {
		return unavailable(errClosed)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, p := range products {
		if p.ID == "" {
			return fmt.Errorf("%w: product %q has no id", domain.ErrInvalidRequest, p.Name)
		}
		val, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
		if err := wb.Set([]byte(productKeyPrefix+p.ID), val); err != nil {
			return unavailable(err)
		}
	}

	if err := wb.Flush(); err != nil {
		return unavailable(err)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
