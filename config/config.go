package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AnujNegi10/kfc-v3-new/internal/infrastructure/postgres"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects and configures the catalog store
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "badger"

	// postgres
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// badger
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// Postgres returns the connection settings for the postgres driver
func (s StoreConfig) Postgres() postgres.Config {
	return postgres.Config{
		Host:            s.Host,
		Port:            s.Port,
		Name:            s.Name,
		User:            s.User,
		Password:        s.Password,
		SSLMode:         s.SSLMode,
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	}
}

// CacheConfig holds configuration of the normalized-name cache
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" for now
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// default locations; a named file must exist.
func LoadFile(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/kiosk-catalog/")
	}

	// Environment variable settings
	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // store.max_open_conns -> KIOSK_STORE_MAX_OPEN_CONNS
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Variables already set in the
// environment win over the file.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Store defaults
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.host", "localhost")
	v.SetDefault("store.port", 5433)
	v.SetDefault("store.name", "postgres")
	v.SetDefault("store.user", "postgres")
	v.SetDefault("store.password", "")
	v.SetDefault("store.sslmode", "disable")
	v.SetDefault("store.max_open_conns", 25)
	v.SetDefault("store.max_idle_conns", 5)
	v.SetDefault("store.conn_max_lifetime", "5m")
	v.SetDefault("store.path", "./data/catalog")
	v.SetDefault("store.in_memory", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Search defaults
	v.SetDefault("search.enable_debug_logging", false)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Store.Driver {
	case DriverPostgres:
		if config.Store.Host == "" || config.Store.Name == "" {
			return fmt.Errorf("postgres store requires host and name (set KIOSK_STORE_HOST, KIOSK_STORE_NAME)")
		}
		if config.Store.Port <= 0 || config.Store.Port > 65535 {
			return fmt.Errorf("postgres store port out of range: %d", config.Store.Port)
		}
	case DriverBadger:
		if config.Store.Path == "" && !config.Store.InMemory {
			return fmt.Errorf("badger store requires a path (set KIOSK_STORE_PATH) or in_memory")
		}
	default:
		return fmt.Errorf("store driver must be 'postgres' or 'badger', got: %s", config.Store.Driver)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Metrics.Enabled && config.Metrics.Path == "" {
		return fmt.Errorf("metrics path is required when metrics are enabled")
	}

	return nil
}
