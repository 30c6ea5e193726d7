package service

import (
	"strings"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/validate"
)

// requireText returns the trimmed string in f, or a ValidationError naming field.
func requireText(f domain.Field, field string) (string, error) {
	if !validate.NonEmptyString(f.Value) {
		return "", domain.NewValidationError(field, field+" is required")
	}
	if !validate.StorableText(f.Value) {
		return "", domain.NewValidationError(field, field+" must not contain NUL characters")
	}
	return strings.TrimSpace(f.Value.(string)), nil
}

// requireDate returns the "YYYY-MM-DD" string in f, or a ValidationError naming field.
func requireDate(f domain.Field, field string) (string, error) {
	if !validate.CalendarDate(f.Value) {
		return "", domain.NewValidationError(field, field+" must be YYYY-MM-DD")
	}
	return f.Value.(string), nil
}

// requireNumber returns the finite number in f, or a ValidationError naming field.
func requireNumber(f domain.Field, field string) (float64, error) {
	n, ok := validate.Number(f.Value)
	if !ok {
		return 0, domain.NewValidationError(field, field+" must be a number")
	}
	return n, nil
}

// optionalText returns nil for an absent or null f, the string otherwise.
// Any other type is a ValidationError naming field.
func optionalText(f domain.Field, field string) (*string, error) {
	if !validate.OptionalString(f.Value) {
		return nil, domain.NewValidationError(field, field+" must be a string or null")
	}
	if f.Value == nil {
		return nil, nil
	}
	if !validate.StorableText(f.Value) {
		return nil, domain.NewValidationError(field, field+" must not contain NUL characters")
	}
	s := f.Value.(string)
	return &s, nil
}
