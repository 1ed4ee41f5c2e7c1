package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrValidation", ErrValidation},
		{"ErrCatalogUnavailable", ErrCatalogUnavailable},
		{"ErrUnknownClassification", ErrUnknownClassification},
		{"ErrNoVariants", ErrNoVariants},
		{"ErrServiceNotConfigured", ErrServiceNotConfigured},
		{"ErrInvalidResponse", ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that sentinel errors do not match each other
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrNoVariants, ErrCatalogUnavailable))
	assert.False(t, errors.Is(ErrValidation, ErrInvalidInput))
}

// TestErrors_Wrapped tests wrapped sentinel detection
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("select variant: %w", ErrNoVariants)
	assert.True(t, errors.Is(wrapped, ErrNoVariants))
	assert.Contains(t, wrapped.Error(), "no variants available")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Position: 2, SlideID: "s2", Field: "generated_title", Message: "missing generated title"},
		{Position: 4, SlideID: "s4", Field: "variant_id", Message: "missing variant"},
	}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "2 violation(s)")
	assert.Contains(t, err.Error(), "slide 2 (s2): missing generated title")
	assert.Contains(t, err.Error(), "slide 4 (s4): missing variant")

	var ve *ValidationError
	wrapped := fmt.Errorf("route: %w", err)
	assert.True(t, errors.As(wrapped, &ve))
	assert.Len(t, ve.Violations, 2)
}

func TestValidationError_Empty(t *testing.T) {
	err := &ValidationError{}
	assert.Equal(t, ErrValidation.Error(), err.Error())
}
