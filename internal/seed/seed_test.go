package seed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/seeder/internal/auth"
	"github.com/mmynk/seeder/internal/fixtures"
	"github.com/mmynk/seeder/internal/models"
	"github.com/mmynk/seeder/internal/storage"
	"github.com/mmynk/seeder/internal/storage/sqlite"
)

var errBoom = errors.New("boom")

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestSeeder(t *testing.T, data fixtures.Set, opts Options) (*Seeder, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed.db")
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return New(sqlite.New(dbPath), auth.NewPasswordHasher(), data, opts), dbPath
}

func openDB(t *testing.T, dbPath string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&n))
	return n > 0
}

// hookSession wraps a real session and injects failures.
type hookSession struct {
	storage.Session

	failCreate  string
	failInvoice func(models.Invoice) bool
	closeErr    error

	closed  atomic.Bool
	invoked atomic.Int64
}

func (h *hookSession) createHook(table string, next func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		if h.failCreate == table {
			return errBoom
		}
		return next(ctx)
	}
}

func (h *hookSession) CreateUsersTable(ctx context.Context) error {
	return h.createHook("users", h.Session.CreateUsersTable)(ctx)
}

func (h *hookSession) CreateCustomersTable(ctx context.Context) error {
	return h.createHook("customers", h.Session.CreateCustomersTable)(ctx)
}

func (h *hookSession) CreateInvoicesTable(ctx context.Context) error {
	return h.createHook("invoices", h.Session.CreateInvoicesTable)(ctx)
}

func (h *hookSession) CreateRevenueTable(ctx context.Context) error {
	return h.createHook("revenue", h.Session.CreateRevenueTable)(ctx)
}

func (h *hookSession) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	h.invoked.Add(1)
	if h.failInvoice != nil && h.failInvoice(invoice) {
		return errBoom
	}
	return h.Session.InsertInvoice(ctx, invoice)
}

func (h *hookSession) Close() error {
	h.closed.Store(true)
	if err := h.Session.Close(); err != nil {
		return err
	}
	return h.closeErr
}

type openerFunc func(ctx context.Context) (storage.Session, error)

func (f openerFunc) Open(ctx context.Context) (storage.Session, error) {
	return f(ctx)
}

// hookedSeeder returns a seeder over a SQLite file whose session is wrapped
// by hook.
func hookedSeeder(t *testing.T, hook *hookSession, data fixtures.Set, opts Options) (*Seeder, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed.db")
	inner := sqlite.New(dbPath)
	opener := openerFunc(func(ctx context.Context) (storage.Session, error) {
		session, err := inner.Open(ctx)
		if err != nil {
			return nil, err
		}
		hook.Session = session
		return hook, nil
	})
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return New(opener, auth.NewPasswordHasher(), data, opts), dbPath
}

func TestSeedPopulatesTables(t *testing.T) {
	data := fixtures.Default()
	seeder, dbPath := newTestSeeder(t, data, Options{})

	report, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Tables, 4)
	order := []string{"users", "customers", "invoices", "revenue"}
	for i, table := range order {
		assert.Equal(t, table, report.Tables[i].Table)
	}

	db := openDB(t, dbPath)
	for table, want := range data.Counts() {
		assert.Equal(t, want, countRows(t, db, table), "rows in %s", table)
	}
}

func TestSeedIsIdempotentForKeyedTables(t *testing.T) {
	data := fixtures.Default()
	seeder, dbPath := newTestSeeder(t, data, Options{})
	ctx := context.Background()

	_, err := seeder.Seed(ctx)
	require.NoError(t, err)

	db := openDB(t, dbPath)
	var firstHash string
	require.NoError(t, db.QueryRow("SELECT password FROM users").Scan(&firstHash))

	_, err = seeder.Seed(ctx)
	require.NoError(t, err, "second run should not fail")

	assert.Equal(t, len(data.Users), countRows(t, db, "users"))
	assert.Equal(t, len(data.Customers), countRows(t, db, "customers"))
	assert.Equal(t, len(data.Revenue), countRows(t, db, "revenue"))

	var secondHash string
	require.NoError(t, db.QueryRow("SELECT password FROM users").Scan(&secondHash))
	assert.Equal(t, firstHash, secondHash, "existing user must not be rewritten")

	// Invoices carry no id, so every run inserts them again.
	assert.Equal(t, 2*len(data.Invoices), countRows(t, db, "invoices"))
}

func TestSeedHashesPasswords(t *testing.T) {
	data := fixtures.Default()
	seeder, dbPath := newTestSeeder(t, data, Options{})

	_, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	db := openDB(t, dbPath)
	want := data.Users[0]

	var stored string
	require.NoError(t, db.QueryRow("SELECT password FROM users WHERE id = ?", want.ID.String()).Scan(&stored))

	assert.NotEqual(t, want.Password, stored)
	assert.NoError(t, auth.NewPasswordHasher().Verify(stored, want.Password))
}

func TestSeedDoesNotMutateFixtures(t *testing.T) {
	data := fixtures.Default()
	seeder, _ := newTestSeeder(t, data, Options{})

	_, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "123456", data.Users[0].Password)
}

func TestSeedDuplicateRevenueMonth(t *testing.T) {
	data := fixtures.Set{
		Revenue: []models.Revenue{
			{Month: "Jan", Revenue: 2000},
			{Month: "Jan", Revenue: 2500},
			{Month: "Feb", Revenue: 1800},
		},
	}
	seeder, dbPath := newTestSeeder(t, data, Options{})

	_, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	db := openDB(t, dbPath)
	assert.Equal(t, 2, countRows(t, db, "revenue"))

	var jan int64
	require.NoError(t, db.QueryRow("SELECT revenue FROM revenue WHERE month = 'Jan'").Scan(&jan))
	assert.Contains(t, []int64{2000, 2500}, jan)
}

func TestSeedEmptyFixtures(t *testing.T) {
	seeder, dbPath := newTestSeeder(t, fixtures.Set{}, Options{})

	report, err := seeder.Seed(context.Background())
	require.NoError(t, err)
	for _, tr := range report.Tables {
		assert.Zero(t, tr.Rows)
	}

	db := openDB(t, dbPath)
	for _, table := range []string{"users", "customers", "invoices", "revenue"} {
		assert.True(t, tableExists(t, db, table), "table %s", table)
	}
}

func TestSeedConnectionFailure(t *testing.T) {
	var opened atomic.Bool
	opener := openerFunc(func(ctx context.Context) (storage.Session, error) {
		opened.Store(true)
		return nil, errBoom
	})
	seeder := New(opener, auth.NewPasswordHasher(), fixtures.Default(), Options{Logger: quietLogger()})

	report, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, opened.Load())
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrSchema)
	assert.NotErrorIs(t, err, ErrInsert)
}

func TestSeedConnectionFailureWritesNothing(t *testing.T) {
	// The database directory cannot be created under a regular file.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	dbPath := filepath.Join(blocker, "seed.db")
	seeder := New(sqlite.New(dbPath), auth.NewPasswordHasher(), fixtures.Default(), Options{Logger: quietLogger()})

	_, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)

	info, err := os.Stat(blocker)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestSeedInsertFailureLeavesEarlierRows(t *testing.T) {
	data := fixtures.Default()
	bad := data.Invoices[3]
	hook := &hookSession{
		failInvoice: func(inv models.Invoice) bool { return inv == bad },
	}
	// One insert at a time makes the failure point deterministic.
	seeder, dbPath := hookedSeeder(t, hook, data, Options{Concurrency: 1})

	_, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsert)
	assert.ErrorIs(t, err, errBoom)

	var seedErr *Error
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, "invoices", seedErr.Table)

	assert.True(t, hook.closed.Load(), "session must be released")
	assert.Equal(t, int64(4), hook.invoked.Load(), "rows after the failure must not be attempted")

	db := openDB(t, dbPath)
	assert.Equal(t, 3, countRows(t, db, "invoices"), "rows before the failure stay committed")
	assert.Equal(t, len(data.Customers), countRows(t, db, "customers"))
	assert.False(t, tableExists(t, db, "revenue"), "later steps must not run")
}

func TestSeedInsertFailureConcurrent(t *testing.T) {
	data := fixtures.Default()
	bad := data.Invoices[len(data.Invoices)-1]
	hook := &hookSession{
		failInvoice: func(inv models.Invoice) bool { return inv == bad },
	}
	seeder, dbPath := hookedSeeder(t, hook, data, Options{Concurrency: 4})

	_, err := seeder.Seed(context.Background())
	require.ErrorIs(t, err, ErrInsert)
	assert.True(t, hook.closed.Load())

	db := openDB(t, dbPath)
	assert.Less(t, countRows(t, db, "invoices"), len(data.Invoices))
}

func TestSeedSchemaFailure(t *testing.T) {
	hook := &hookSession{failCreate: "customers"}
	seeder, dbPath := hookedSeeder(t, hook, fixtures.Default(), Options{})

	_, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.True(t, hook.closed.Load())

	db := openDB(t, dbPath)
	assert.Equal(t, 1, countRows(t, db, "users"), "users step ran before the failure")
	assert.False(t, tableExists(t, db, "invoices"))
}

func TestSeedCloseFailure(t *testing.T) {
	t.Run("after success is a connection error", func(t *testing.T) {
		hook := &hookSession{closeErr: errBoom}
		seeder, _ := hookedSeeder(t, hook, fixtures.Set{}, Options{})

		_, err := seeder.Seed(context.Background())
		assert.ErrorIs(t, err, ErrConnection)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("does not mask step failure", func(t *testing.T) {
		hook := &hookSession{failCreate: "users", closeErr: errors.New("close failed")}
		seeder, _ := hookedSeeder(t, hook, fixtures.Set{}, Options{})

		_, err := seeder.Seed(context.Background())
		assert.ErrorIs(t, err, ErrSchema)
		assert.NotErrorIs(t, err, ErrConnection)
	})
}

func TestSeedHashFailureIsInsertError(t *testing.T) {
	data := fixtures.Set{
		Users: []models.User{{Name: "Long", Email: "long@example.com", Password: string(make([]byte, 100))}},
	}
	seeder, _ := newTestSeeder(t, data, Options{})

	_, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsert)
}

// countingSession records the peak number of concurrent invoice inserts.
type countingSession struct {
	storage.Session

	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *countingSession) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
	return c.Session.InsertInvoice(ctx, invoice)
}

func TestSeedBoundsConcurrency(t *testing.T) {
	counting := &countingSession{}
	inner := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
	opener := openerFunc(func(ctx context.Context) (storage.Session, error) {
		session, err := inner.Open(ctx)
		if err != nil {
			return nil, err
		}
		counting.Session = session
		return counting, nil
	})

	seeder := New(opener, auth.NewPasswordHasher(), fixtures.Default(), Options{Concurrency: 3, Logger: quietLogger()})
	_, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, counting.peak, 3)
	assert.GreaterOrEqual(t, counting.peak, 1)
}

func TestSeedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	data := fixtures.Default()

	seeder, _ := newTestSeeder(t, data, Options{Metrics: metrics})
	_, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	failing := New(openerFunc(func(ctx context.Context) (storage.Session, error) {
		return nil, errBoom
	}), auth.NewPasswordHasher(), data, Options{Metrics: metrics, Logger: quietLogger()})
	_, err = failing.Seed(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("connection")))
	assert.Equal(t, float64(len(data.Invoices)), testutil.ToFloat64(metrics.rows.WithLabelValues("invoices")))
	assert.Equal(t, float64(len(data.Revenue)), testutil.ToFloat64(metrics.rows.WithLabelValues("revenue")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var observed uint64
	for _, mf := range families {
		if mf.GetName() == "seeder_run_duration_seconds" {
			observed = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), observed)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrInsert, Table: "invoices", Err: errBoom}
	assert.Equal(t, "insert error: invoices: boom", err.Error())

	err = &Error{Kind: ErrConnection, Err: errBoom}
	assert.Equal(t, "connection error: boom", err.Error())
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "success", resultLabel(nil))
	assert.Equal(t, "schema", resultLabel(&Error{Kind: ErrSchema, Err: errBoom}))
	assert.Equal(t, "unknown", resultLabel(errBoom))
}
