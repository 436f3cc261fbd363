package intent

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the UseCase matches exactly one
// of these with errors.Is, except ErrClassifyTimeout.
var (
	// ErrValidation is bad caller input. The caller recovers from it.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration prevents the router from becoming ready.
	ErrConfiguration = errors.New("configuration error")
	// ErrEncoding is a per-call encoder failure.
	ErrEncoding = errors.New("encoding error")
	// ErrSync is a failed index rebuild. The last good index keeps serving.
	ErrSync = errors.New("sync error")
)

var (
	ErrEmptyQuery        = newCategoryError(ErrValidation, "query is empty")
	ErrTooManyQueries    = newCategoryError(ErrValidation, "too many queries in batch")
	ErrInvalidRegistry   = newCategoryError(ErrValidation, "invalid route registry")
	ErrEmptyRegistry     = newCategoryError(ErrConfiguration, "route registry is empty")
	ErrDimensionMismatch = newCategoryError(ErrConfiguration, "embedding dimensions do not match")
	ErrNotReady          = newCategoryError(ErrConfiguration, "router is not ready")

	// ErrClassifyTimeout is returned together with a "none" intent when the
	// classify deadline expires.
	ErrClassifyTimeout = errors.New("classify timed out")
)

type categoryError struct {
	category error
	msg      string
}

func newCategoryError(category error, msg string) error {
	return &categoryError{category: category, msg: msg}
}

func (e *categoryError) Error() string { return e.msg }

func (e *categoryError) Unwrap() error { return e.category }

// Category names the category err belongs to, for logs and metrics.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrClassifyTimeout):
		return "timeout"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrEncoding):
		return "encoding"
	case errors.Is(err, ErrSync):
		return "sync"
	default:
		return "unknown"
	}
}

// Wrap tags err with category unless it already belongs to one.
func Wrap(category, err error) error {
	if err == nil || errors.Is(err, category) {
		return err
	}
	return fmt.Errorf("%w: %w", category, err)
}
