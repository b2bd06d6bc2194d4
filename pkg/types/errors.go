package types

import (
	"errors"
	"fmt"
)

// Session and object-state errors.
var (
	ErrInvalidSession = errors.New("session is not valid")
	ErrReadOnly       = errors.New("object is read-only")
	ErrNotDirty       = errors.New("object has no pending changes")
)

// Query and record errors.
var (
	ErrInvalidCriteria = errors.New("invalid query criteria")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrNotFound        = errors.New("object not found")
	ErrUnknownType     = errors.New("unknown entity type")
)

// ErrAPI matches any *APIError through errors.Is.
var ErrAPI = errors.New("portal api error")

// APIError is a business-level failure reported by the server: a commit
// answered with success=false, or an HTTP 500 that carried a body. Message
// holds the server text verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrAPI) match every APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

func typeMismatch(want, got string) error {
	return fmt.Errorf("%w: want %s, got %q", ErrTypeMismatch, want, got)
}
