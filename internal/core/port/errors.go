package port

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by repositories and usecases. Handlers map
// them onto HTTP status codes.
var (
	// ErrNotFound signals that the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals a tenant-ownership or capability violation.
	// No side effects have occurred when it is returned.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError rejects malformed input before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
