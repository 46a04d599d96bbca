package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned by mutating calls made without an
	// authenticated identity.
	ErrUnauthenticated = errors.New("store: not authenticated")

	// ErrNotFound is returned by LoadByID after both tables missed, and by
	// owner-scoped deletes that matched nothing.
	ErrNotFound = errors.New("store: form not found")
)

// StoreError wraps a backend failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
