// Package apperror defines the error taxonomy shared by the service,
// storage and handler layers. Handlers translate these into HTTP
// statuses; everything unclassified becomes a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrForbidden       = errors.New("insufficient permission")
	ErrFileUnavailable = errors.New("file not available")
	ErrEmailTaken      = errors.New("email already registered")
)

// ValidationError marks malformed input. Surfaced as 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a blob backend failure. Surfaced as 500 with the
// backend message embedded. Callers must not assume any metadata write
// happened once they see one of these.
type StorageError struct {
	Op  string // upload, download, delete, exists
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
