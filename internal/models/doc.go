// Package models defines the records the seeder writes to the dashboard
// database.
//
// # Models
//
//   - User: a dashboard login. Only the bcrypt hash of Password is stored.
//   - Customer: a billed customer with an avatar image.
//   - Invoice: an amount owed by a customer, in cents.
//   - Revenue: a monthly revenue total, keyed by a short month code.
//
// # Relationships
//
// Invoice.CustomerID refers to a Customer by ID. The reference is not
// enforced by the schema, so records are linked by UUID value only and never
// by pointer.
package models
