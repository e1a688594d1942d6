// Package postgres provides the PostgreSQL implementation of storage.Opener,
// built on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/seeder/internal/storage"
)

var (
	_ storage.Opener  = (*Opener)(nil)
	_ storage.Session = (*Session)(nil)
)

// Options tunes the pool behind each session.
type Options struct {
	// MaxConns caps concurrent statements in flight. Defaults to 4.
	MaxConns int32

	// ConnectTimeout bounds dialing a single connection. Defaults to 10s.
	ConnectTimeout time.Duration
}

// Opener opens sessions against the database at DSN. Transport encryption
// is always required.
type Opener struct {
	dsn  string
	opts Options
}

// New returns an Opener for dsn. The DSN is validated lazily on Open.
func New(dsn string, opts Options) *Opener {
	if opts.MaxConns <= 0 {
		opts.MaxConns = 4
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	return &Opener{dsn: dsn, opts: opts}
}

// Open builds a pool, checks that the server is reachable and returns a
// session that owns the pool.
func (o *Opener) Open(ctx context.Context) (storage.Session, error) {
	dsn, err := requireTLS(o.dsn)
	if err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	cfg.MaxConns = o.opts.MaxConns
	cfg.ConnConfig.ConnectTimeout = o.opts.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Session{pool: pool}, nil
}

// sslmodes that already require an encrypted transport.
var encryptedModes = map[string]bool{
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// requireTLS rewrites dsn so the connection cannot fall back to plaintext.
// Both URL and keyword/value connection strings are accepted.
func requireTLS(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("failed to parse connection string: %w", err)
		}
		q := u.Query()
		if !encryptedModes[q.Get("sslmode")] {
			q.Set("sslmode", "require")
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	for _, field := range strings.Fields(dsn) {
		if mode, ok := strings.CutPrefix(field, "sslmode="); ok && encryptedModes[mode] {
			return dsn, nil
		}
	}
	// Later keywords override earlier ones when pgx parses the string.
	return strings.TrimSpace(dsn + " sslmode=require"), nil
}

// Session runs seed statements on a pool owned by one seed run.
type Session struct {
	pool *pgxpool.Pool
}

// Close closes every connection in the pool.
func (s *Session) Close() error {
	s.pool.Close()
	return nil
}

// EnableUUIDs installs the uuid-ossp extension for uuid_generate_v4().
func (s *Session) EnableUUIDs(ctx context.Context) error {
	return s.exec(ctx, "enable uuid-ossp", `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)
}

func (s *Session) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	return nil
}
