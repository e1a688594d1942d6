// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr        string // ADDR, default ":8080"
	Driver      string // DB_DRIVER, "postgres" (default) or "sqlite"
	DatabaseURL string // POSTGRES_URL, required for postgres
	DBPath      string // DB_PATH, default "./data/seed.db"
	MaxConns    int    // DB_MAX_CONNS, default 4
	Concurrency int    // SEED_CONCURRENCY, default 8
	JWTSecret   string // SEED_JWT_SECRET, optional
}

// Load reads a .env file from the working directory if one exists, then
// builds a Config from the environment. Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	maxConns, err := intOr("DB_MAX_CONNS", 4)
	if err != nil {
		return Config{}, err
	}
	concurrency, err := intOr("SEED_CONCURRENCY", 8)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:        envOr("ADDR", ":8080"),
		Driver:      envOr("DB_DRIVER", DriverPostgres),
		DatabaseURL: os.Getenv("POSTGRES_URL"),
		DBPath:      envOr("DB_PATH", "./data/seed.db"),
		MaxConns:    maxConns,
		Concurrency: concurrency,
		JWTSecret:   os.Getenv("SEED_JWT_SECRET"),
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("POSTGRES_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Driver)
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.MaxConns)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("SEED_CONCURRENCY must be positive, got %d", c.Concurrency)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
