package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"portfolio/internal/apperr"
)

// translate converts driver errors into the application taxonomy so no raw
// driver error crosses the repository boundary. Duplicate-key errors are
// handled at call sites where the conflicting slug is known.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var connErr *apperr.ConnectionError
	if errors.As(err, &connErr) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	if mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &apperr.ConnectionError{Err: err}
	}
	return err
}
