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
		{"ErrValidation", ErrValidation},
		{"ErrBackendUnavailable", ErrBackendUnavailable},
		{"ErrIndexNotReady", ErrIndexNotReady},
		{"ErrBuildFailure", ErrBuildFailure},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrNotFound", ErrNotFound},
		{"ErrUnsupportedType", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_BackendFamily tests that service-specific errors belong to the backend family
func TestErrors_BackendFamily(t *testing.T) {
	assert.True(t, errors.Is(ErrEmbeddingUnavailable, ErrBackendUnavailable))
	assert.True(t, errors.Is(ErrLLMUnavailable, ErrBackendUnavailable))
	assert.False(t, errors.Is(ErrEmbeddingUnavailable, ErrLLMUnavailable))
	assert.False(t, errors.Is(ErrBuildFailure, ErrBackendUnavailable))
}

// TestErrors_Distinct tests that the taxonomy sentinels do not match each other
func TestErrors_Distinct(t *testing.T) {
	taxonomy := []error{ErrValidation, ErrBackendUnavailable, ErrIndexNotReady, ErrBuildFailure}
	for i, a := range taxonomy {
		for j, b := range taxonomy {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors are still detected
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("sqlite strategy: %w", ErrBuildFailure)
	assert.True(t, errors.Is(wrapped, ErrBuildFailure))
	assert.Contains(t, wrapped.Error(), "index build failed")

	deep := fmt.Errorf("setup: %w", fmt.Errorf("select: %w", ErrEmbeddingUnavailable))
	assert.True(t, errors.Is(deep, ErrBackendUnavailable))
}

// TestErrIndexNotReady tests ErrIndexNotReady error
func TestErrIndexNotReady(t *testing.T) {
	assert.Equal(t, "index not ready", ErrIndexNotReady.Error())
}
