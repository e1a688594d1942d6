package postgres

import (
	"context"

	"github.com/mmynk/seeder/internal/models"
)

const (
	createUsers = `
CREATE TABLE IF NOT EXISTS users (
    id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
)`

	createCustomers = `
CREATE TABLE IF NOT EXISTS customers (
    id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    image_url VARCHAR(255) NOT NULL
)`

	createInvoices = `
CREATE TABLE IF NOT EXISTS invoices (
    id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
    customer_id UUID NOT NULL,
    amount INT NOT NULL,
    status VARCHAR(255) NOT NULL,
    date DATE NOT NULL
)`

	createRevenue = `
CREATE TABLE IF NOT EXISTS revenue (
    month VARCHAR(4) NOT NULL UNIQUE,
    revenue INT NOT NULL
)`
)

func (s *Session) CreateUsersTable(ctx context.Context) error {
	return s.exec(ctx, "create users table", createUsers)
}

func (s *Session) CreateCustomersTable(ctx context.Context) error {
	return s.exec(ctx, "create customers table", createCustomers)
}

func (s *Session) CreateInvoicesTable(ctx context.Context) error {
	return s.exec(ctx, "create invoices table", createInvoices)
}

func (s *Session) CreateRevenueTable(ctx context.Context) error {
	return s.exec(ctx, "create revenue table", createRevenue)
}

func (s *Session) InsertUser(ctx context.Context, user models.User) error {
	return s.exec(ctx, "insert user", `
		INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		user.ID, user.Name, user.Email, user.Password,
	)
}

func (s *Session) InsertCustomer(ctx context.Context, customer models.Customer) error {
	return s.exec(ctx, "insert customer", `
		INSERT INTO customers (id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		customer.ID, customer.Name, customer.Email, customer.ImageURL,
	)
}

// InsertInvoice lets the database pick the id, so the conflict clause never
// fires and repeated runs add rows.
func (s *Session) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	return s.exec(ctx, "insert invoice", `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		invoice.CustomerID, invoice.Amount, invoice.Status, invoice.Date,
	)
}

func (s *Session) InsertRevenue(ctx context.Context, revenue models.Revenue) error {
	return s.exec(ctx, "insert revenue", `
		INSERT INTO revenue (month, revenue)
		VALUES ($1, $2)
		ON CONFLICT (month) DO NOTHING`,
		revenue.Month, revenue.Revenue,
	)
}
