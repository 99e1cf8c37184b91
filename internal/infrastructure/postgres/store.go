package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/internal/domain"
	_ "github.com/lib/pq"
)

// productColumns is the projection shared by every product query
const productColumns = `id::text, name, COALESCE(description, ''), COALESCE(category, ''), COALESCE(type, ''), price, COALESCE(image, '')`

// Config holds the connection settings of the catalog database
type Config struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// MaxOpenConns is the maximum number of open connections. Default: 25
	MaxOpenConns int
	// MaxIdleConns is the maximum number of idle connections. Default: 5
	MaxIdleConns int
	// ConnMaxLifetime is how long a connection may be reused. Default: 5 minutes
	ConnMaxLifetime time.Duration
}

// DSN renders the config as a postgres:// connection URL
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

// Store is a domain.ProductRepository backed by a PostgreSQL products table
type Store struct {
	db    *sql.DB
	debug bool
}

// Open creates a connection pool for cfg. It does not contact the server;
// use Ping to check reachability.
func Open(cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	return NewStore(db), nil
}

// NewStore wraps an existing database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SetDebug enables logging of every executed statement
func (s *Store) SetDebug(debug bool) {
	s.debug = debug
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

// FindByNameContaining returns products whose name contains any fragment, ignoring case
func (s *Store) FindByNameContaining(ctx context.Context, fragments ...string) ([]domain.Product, error) {
	if len(fragments) == 0 {
		return []domain.Product{}, nil
	}

	clauses := make([]string, len(fragments))
	args := make([]interface{}, len(fragments))
	for i, fragment := range fragments {
		clauses[i] = fmt.Sprintf("name ILIKE $%d", i+1)
		args[i] = containsPattern(fragment)
	}

	query := "SELECT " + productColumns + " FROM products WHERE " + strings.Join(clauses, " OR ") + " ORDER BY id"
	return s.query(ctx, query, args...)
}

// ListAll returns the whole catalog
func (s *Store) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.query(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
}

// List translates filter into SQL predicates
func (s *Store) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query, args := buildListQuery(filter)
	return s.query(ctx, query, args...)
}

// buildListQuery appends one predicate per populated filter field
func buildListQuery(filter domain.ProductFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	var args []interface{}
	add := func(predicate string, arg interface{}) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND "+predicate, len(args))
	}

	if filter.ID != "" {
		add("id::text = $%d", filter.ID)
	}
	if filter.Name != "" {
		add("name ILIKE $%d", containsPattern(filter.Name))
	}
	if filter.HasCategory() {
		add("category ILIKE $%d", escapeLike(filter.Category))
	}
	if filter.Type != "" {
		add("type ILIKE $%d", escapeLike(filter.Type))
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}

	sb.WriteString(" ORDER BY id")
	return sb.String(), args
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	if s.debug {
		log.Printf("[POSTGRES] Executing query: %s", query)
		log.Printf("[POSTGRES] With params: %v", args)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Type, &p.Price, &p.Image); err != nil {
			return nil, unavailable(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return products, nil
}

// Initialize creates the products table and its indices if missing
func (s *Store) Initialize(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			type TEXT,
			price NUMERIC(10, 2) NOT NULL DEFAULT 0,
			image TEXT
		)`,
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return unavailable(err)
		}
	}
	return nil
}

// Upsert inserts or replaces products in a single transaction
func (s *Store) Upsert(ctx context.Context, products []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, description, category, type, price, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			image = EXCLUDED.image`)
	if err != nil {
		return unavailable(err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Description, p.Category, p.Type, p.Price, p.Image); err != nil {
			return unavailable(fmt.Errorf("product %s: %w", p.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable(err)
	}
	return nil
}

// containsPattern builds an ILIKE pattern matching s anywhere in the column
func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

// escapeLike escapes LIKE wildcards so s is matched literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
