package service

import (
	"errors"
	"fmt"

	"github.com/ofertemutare/ofertemutare/internal/repository"
)

var (
	// ErrStoreUnavailable marks infrastructure failures (database, object
	// storage). Callers surface them as 500 and do not retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrForbidden        = errors.New("caller may not access this moving request")
	ErrNoActiveToken    = errors.New("moving request has no upload link")

	ErrRequestNotFound = repository.ErrRequestNotFound
	ErrTokenNotFound   = repository.ErrTokenNotFound
	ErrTokenUsed       = repository.ErrTokenUsed
	ErrTokenExpired    = repository.ErrTokenExpired
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
