package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses used by the dashboard.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

// Invoice is an amount billed to a customer.
//
// There is no ID field: the database assigns one on insert.
type Invoice struct {
	// CustomerID references Customer.ID. Not enforced by a foreign key.
	CustomerID uuid.UUID

	// Amount is in cents.
	Amount int64

	// Status is InvoicePending or InvoicePaid.
	Status string

	// Date is the calendar day the invoice was issued. Only the date part
	// is stored.
	Date time.Time
}
