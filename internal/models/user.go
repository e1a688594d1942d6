package models

import "github.com/google/uuid"

// User represents a dashboard login account.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	Email string

	// Password is the plaintext fixture password. It is hashed before it
	// reaches storage and is never persisted as-is.
	Password string
}
