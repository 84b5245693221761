// Package apperr defines the error taxonomy repositories translate into.
// No raw driver or filesystem error crosses the repository boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound reports that no record matched the given identifier or slug.
var ErrNotFound = errors.New("record not found")

// ValidationError reports missing or malformed required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConflictError reports a uniqueness constraint violation (typically slug).
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// ConnectionError reports that the database was unreachable or timed out
// after bounded retries.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// FileStoreError reports a disk read/write failure on a content file.
type FileStoreError struct {
	Name string
	Err  error
}

func (e *FileStoreError) Error() string {
	return fmt.Sprintf("file store %q: %v", e.Name, e.Err)
}

func (e *FileStoreError) Unwrap() error { return e.Err }

// HTTPStatus maps a taxonomy error to its response status code.
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
