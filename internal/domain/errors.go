package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by id misses the supplied model or dataset.
var ErrNotFound = errors.New("not found")

// ValidationError represents an invalid configuration or input field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
