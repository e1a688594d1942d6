// Package sqlite provides a SQLite-backed implementation of storage.Opener.
// It mirrors the PostgreSQL schema closely enough for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/seeder/internal/storage"
)

var (
	_ storage.Opener  = (*Opener)(nil)
	_ storage.Session = (*Session)(nil)
)

// Opener opens sessions against the SQLite database file at Path.
type Opener struct {
	Path string
}

// New returns an Opener for the database at dbPath.
func New(dbPath string) *Opener {
	return &Opener{Path: dbPath}
}

// Open creates the parent directory if needed and opens the database.
func (o *Opener) Open(ctx context.Context) (storage.Session, error) {
	dir := filepath.Dir(o.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", o.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: concurrent inserts queue inside database/sql instead
	// of racing for the SQLite write lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &Session{db: db}, nil
}

// Session is a seed session on one SQLite database handle.
type Session struct {
	db *sql.DB
}

// EnableUUIDs is a no-op: SQLite has no UUID extension, ids are generated
// by the caller instead.
func (s *Session) EnableUUIDs(ctx context.Context) error {
	return nil
}

// Close closes the database handle.
func (s *Session) Close() error {
	return s.db.Close()
}

func (s *Session) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	return nil
}
