package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCollectionNotFound signals a missing vector collection.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals an answer-synthesis provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrInvalidQuery signals a query rejected by input validation.
	ErrInvalidQuery = errors.New("invalid query")
)

// ValidationError wraps ErrInvalidQuery with a user-facing corrective message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidQuery }

// NewValidationError creates a validation error carrying a corrective message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
