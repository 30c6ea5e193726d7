package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel every *ValidationError unwraps to.
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrTransaction is returned when a multi-statement write could not be
// committed. The store has rolled back every statement in the transaction.
var ErrTransaction = errors.New("transaction failed")

// ValidationError reports malformed input or a violated cross-field rule.
// Field names the offending request field in its API (camelCase) spelling;
// it is empty when the failure is not tied to a single field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field with message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
