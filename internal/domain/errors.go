package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrValidation = errors.New("validation error")

	// ErrInvalidWord is returned for a missing or malformed lookup word.
	ErrInvalidWord = errors.New("invalid word")
	// ErrNotConfigured is returned when LLM credentials are absent.
	ErrNotConfigured = errors.New("llm not configured")
	// ErrUpstreamProtocol is returned when the model provider signals an
	// unexpected condition (non-2xx status, API error body).
	ErrUpstreamProtocol = errors.New("upstream protocol error")
	// ErrInvalidModelOutput is returned when the model content is not a JSON object.
	ErrInvalidModelOutput = errors.New("invalid model output")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
