package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/seeder/internal/models"
)

// InsertUser inserts a user, skipping an existing id.
func (s *Session) InsertUser(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO users (id, name, email, password)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	return s.exec(ctx, "insert user", query,
		user.ID.String(),
		user.Name,
		user.Email,
		user.Password,
	)
}

// InsertCustomer inserts a customer, skipping an existing id.
func (s *Session) InsertCustomer(ctx context.Context, customer models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, image_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	return s.exec(ctx, "insert customer", query,
		customer.ID.String(),
		customer.Name,
		customer.Email,
		customer.ImageURL,
	)
}

// InsertInvoice inserts an invoice under a new random id. The conflict
// clause can never match, so every call adds a row.
func (s *Session) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	return s.exec(ctx, "insert invoice", query,
		uuid.New().String(),
		invoice.CustomerID.String(),
		invoice.Amount,
		invoice.Status,
		invoice.Date.Format(time.DateOnly),
	)
}

// InsertRevenue inserts a revenue row, skipping an existing month.
func (s *Session) InsertRevenue(ctx context.Context, revenue models.Revenue) error {
	query := `
		INSERT INTO revenue (month, revenue)
		VALUES (?, ?)
		ON CONFLICT (month) DO NOTHING
	`
	return s.exec(ctx, "insert revenue", query, revenue.Month, revenue.Revenue)
}
