package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is reported when the IRR solver exhausts its iteration budget
	ErrNotConverged = errors.New("irr did not converge")

	// ErrIndeterminate is reported when the IRR cannot be derived from the cash flows
	// (derivative underflow or fewer than two periods). It is NOT a 0% return.
	ErrIndeterminate = errors.New("irr is indeterminate")

	// ErrInvalidInput is the sentinel wrapped by every *InvalidInputError
	ErrInvalidInput = errors.New("invalid input")

	// ErrScenarioNotFound is returned by repositories when no scenario matches the lookup
	ErrScenarioNotFound = errors.New("scenario not found")
)

// InvalidInputError describes a rejected input field
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
