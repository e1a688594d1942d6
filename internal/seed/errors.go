package seed

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Seed matches exactly one of them
// with errors.Is.
var (
	ErrConnection = errors.New("connection error")
	ErrSchema     = errors.New("schema error")
	ErrInsert     = errors.New("insert error")
)

// Error describes a failed seed run.
type Error struct {
	// Kind is ErrConnection, ErrSchema or ErrInsert.
	Kind error

	// Table is the table being seeded, empty for session-level failures.
	Table string

	// Err is the underlying driver or hashing error.
	Err error
}

func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Table, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
