package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a routing precondition was violated.
	// Upfront validation failures abort the whole routing run.
	ErrValidation = errors.New("validation failed")

	// Catalog Errors.

	// ErrCatalogUnavailable indicates the variant catalog could not be loaded.
	// Callers fall back to the static variant table.
	ErrCatalogUnavailable = errors.New("variant catalog unavailable")

	// ErrUnknownClassification indicates a classification has no catalog mapping.
	ErrUnknownClassification = errors.New("unknown classification")

	// ErrNoVariants indicates the catalog has no variants for a slide type.
	ErrNoVariants = errors.New("no variants available")

	// Service Errors.

	// ErrServiceNotConfigured indicates a remote generation client is missing.
	ErrServiceNotConfigured = errors.New("service not configured")

	// ErrInvalidResponse indicates a remote service returned a payload
	// that does not match its response contract.
	ErrInvalidResponse = errors.New("invalid service response")
)

// Violation describes a single failed routing precondition.
type Violation struct {
	// Position is the 1-indexed slide position.
	Position int `json:"position"`

	// SlideID identifies the offending slide.
	SlideID string `json:"slide_id"`

	// Field names the missing or invalid field.
	Field string `json:"field"`

	// Message explains the violation.
	Message string `json:"message"`
}

// ValidationError collects every violation found during upfront validation.
// It unwraps to ErrValidation.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("slide %d (%s): %s", v.Position, v.SlideID, v.Message))
	}
	return fmt.Sprintf("%s: %d violation(s): %s", ErrValidation, len(e.Violations), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
