package models

import "github.com/google/uuid"

// Customer represents a customer that invoices are billed to.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}
