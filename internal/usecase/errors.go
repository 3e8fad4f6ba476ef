package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDuplicate             = errors.New("duplicate record")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeError marks a record store failure so callers can tell an outage
// apart from their own bad input.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
}
