// Package storage provides abstractions for the database the seeder writes to.
package storage

import (
	"context"

	"github.com/mmynk/seeder/internal/models"
)

// Opener acquires a Session. A seed run opens exactly one session and
// closes it when done, so backends may hold a pool or a single connection
// behind it.
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

// Session defines the schema and insert operations used to seed the
// dashboard tables. This abstraction allows swapping backends (PostgreSQL,
// SQLite) without changing the seeder.
//
// Insert methods must be safe to call concurrently. Each one is a single
// statement with no surrounding transaction and silently skips rows whose
// unique key already exists.
type Session interface {
	// EnableUUIDs makes server-side UUID generation available. Idempotent.
	EnableUUIDs(ctx context.Context) error

	// CreateUsersTable creates the users table if it does not exist.
	CreateUsersTable(ctx context.Context) error

	// InsertUser inserts a user whose Password field already holds a hash.
	// Conflicts on id are skipped.
	InsertUser(ctx context.Context, user models.User) error

	// CreateCustomersTable creates the customers table if it does not exist.
	CreateCustomersTable(ctx context.Context) error

	// InsertCustomer inserts a customer. Conflicts on id are skipped.
	InsertCustomer(ctx context.Context, customer models.Customer) error

	// CreateInvoicesTable creates the invoices table if it does not exist.
	CreateInvoicesTable(ctx context.Context) error

	// InsertInvoice inserts an invoice under a freshly generated id.
	InsertInvoice(ctx context.Context, invoice models.Invoice) error

	// CreateRevenueTable creates the revenue table if it does not exist.
	CreateRevenueTable(ctx context.Context) error

	// InsertRevenue inserts a revenue row. Conflicts on month are skipped.
	InsertRevenue(ctx context.Context, revenue models.Revenue) error

	// Close releases the session.
	Close() error
}
