package sqlite

import "context"

// Table definitions. Column types follow the PostgreSQL schema; UUID and
// DATE values are stored as TEXT.
const (
	createUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
)`

	createCustomers = `
CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    image_url VARCHAR(255) NOT NULL
)`

	createInvoices = `
CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    status VARCHAR(255) NOT NULL,
    date TEXT NOT NULL
)`

	createRevenue = `
CREATE TABLE IF NOT EXISTS revenue (
    month VARCHAR(4) NOT NULL UNIQUE,
    revenue INTEGER NOT NULL
)`
)

// CreateUsersTable creates the users table if it does not exist.
func (s *Session) CreateUsersTable(ctx context.Context) error {
	return s.exec(ctx, "create users table", createUsers)
}

// CreateCustomersTable creates the customers table if it does not exist.
func (s *Session) CreateCustomersTable(ctx context.Context) error {
	return s.exec(ctx, "create customers table", createCustomers)
}

// CreateInvoicesTable creates the invoices table if it does not exist.
func (s *Session) CreateInvoicesTable(ctx context.Context) error {
	return s.exec(ctx, "create invoices table", createInvoices)
}

// CreateRevenueTable creates the revenue table if it does not exist.
func (s *Session) CreateRevenueTable(ctx context.Context) error {
	return s.exec(ctx, "create revenue table", createRevenue)
}
