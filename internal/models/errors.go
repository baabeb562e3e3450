package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks input that was rejected before reaching the store.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
