// Package seed creates the dashboard tables and fills them with fixture
// data.
//
// A run is linear: open a session, enable UUID generation, then create and
// fill users, customers, invoices and revenue in that order, then close the
// session. Rows within one table are inserted concurrently. Nothing is
// wrapped in a transaction, so a failed run may leave a table partially
// seeded.
package seed

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/seeder/internal/fixtures"
	"github.com/mmynk/seeder/internal/storage"
)

// DefaultConcurrency is the number of inserts kept in flight per table.
const DefaultConcurrency = 8

// Hasher turns a plaintext password into the value stored in users.password.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Options configures a Seeder. The zero value is usable.
type Options struct {
	// Concurrency bounds in-flight inserts per table. Defaults to
	// DefaultConcurrency.
	Concurrency int

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *Metrics
}

// Seeder seeds one database with one fixture set. It is safe to call Seed
// from several goroutines; each call opens its own session.
type Seeder struct {
	opener      storage.Opener
	hasher      Hasher
	data        fixtures.Set
	concurrency int
	logger      *slog.Logger
	metrics     *Metrics
}

// New creates a Seeder.
func New(opener storage.Opener, hasher Hasher, data fixtures.Set, opts Options) *Seeder {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Seeder{
		opener:      opener,
		hasher:      hasher,
		data:        data,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// TableReport is the outcome for one table.
type TableReport struct {
	Table string

	// Rows is the number of fixture rows processed, including rows skipped
	// because their key already existed.
	Rows int
}

// Report summarizes a successful run.
type Report struct {
	Tables   []TableReport
	Duration time.Duration
}

// Seed runs the full seed procedure. The session is always closed, even
// when a step fails. Errors are *Error values.
func (s *Seeder) Seed(ctx context.Context) (report *Report, err error) {
	start := time.Now()
	defer func() {
		s.metrics.runDone(err, time.Since(start))
	}()

	session, err := s.opener.Open(ctx)
	if err != nil {
		s.logger.Error("Failed to open database session", "error", err)
		return nil, &Error{Kind: ErrConnection, Err: err}
	}

	report, err = s.run(ctx, session)

	if closeErr := session.Close(); closeErr != nil {
		if err != nil {
			// The step failure is what the caller needs to see.
			s.logger.Error("Failed to close database session", "error", closeErr)
		} else {
			return nil, &Error{Kind: ErrConnection, Err: closeErr}
		}
	}
	if err != nil {
		s.logger.Error("Seeding failed", "error", err)
		return nil, err
	}

	report.Duration = time.Since(start)
	s.logger.Info("Database seeded", "duration_ms", report.Duration.Milliseconds())
	return report, nil
}

// step is the create-and-fill procedure for one table.
type step struct {
	table  string
	create func(ctx context.Context) error
	rows   int
	insert func(ctx context.Context, i int) error
}

func (s *Seeder) run(ctx context.Context, session storage.Session) (*Report, error) {
	if err := session.EnableUUIDs(ctx); err != nil {
		return nil, &Error{Kind: ErrSchema, Err: err}
	}

	steps := []step{
		{
			table:  "users",
			create: session.CreateUsersTable,
			rows:   len(s.data.Users),
			insert: func(ctx context.Context, i int) error {
				user := s.data.Users[i]
				hashed, err := s.hasher.Hash(user.Password)
				if err != nil {
					return err
				}
				user.Password = hashed
				return session.InsertUser(ctx, user)
			},
		},
		{
			table:  "customers",
			create: session.CreateCustomersTable,
			rows:   len(s.data.Customers),
			insert: func(ctx context.Context, i int) error {
				return session.InsertCustomer(ctx, s.data.Customers[i])
			},
		},
		{
			table:  "invoices",
			create: session.CreateInvoicesTable,
			rows:   len(s.data.Invoices),
			insert: func(ctx context.Context, i int) error {
				return session.InsertInvoice(ctx, s.data.Invoices[i])
			},
		},
		{
			table:  "revenue",
			create: session.CreateRevenueTable,
			rows:   len(s.data.Revenue),
			insert: func(ctx context.Context, i int) error {
				return session.InsertRevenue(ctx, s.data.Revenue[i])
			},
		},
	}

	report := &Report{Tables: make([]TableReport, 0, len(steps))}
	for _, st := range steps {
		if err := s.seedTable(ctx, st); err != nil {
			return nil, err
		}
		report.Tables = append(report.Tables, TableReport{Table: st.table, Rows: st.rows})
	}
	return report, nil
}

// seedTable creates the table, then inserts every row through a bounded
// group. The first insert failure stops rows that have not started yet;
// rows already written stay written.
func (s *Seeder) seedTable(ctx context.Context, st step) error {
	s.logger.Debug("Seeding table", "table", st.table, "rows", st.rows)

	if err := st.create(ctx); err != nil {
		return &Error{Kind: ErrSchema, Table: st.table, Err: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := 0; i < st.rows; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := st.insert(gctx, i); err != nil {
				return err
			}
			s.metrics.rowDone(st.table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Error{Kind: ErrInsert, Table: st.table, Err: err}
	}

	s.logger.Info("Table seeded", "table", st.table, "rows", st.rows)
	return nil
}
