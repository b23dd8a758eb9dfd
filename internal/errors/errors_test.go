//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrConnectivity)
	assert.NotEqual(t, ErrValidation, ErrPermission)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrConnectivity, ErrRequestFailed)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "duplicate moduleName",
		Location: "/modules/billing/module.yaml",
		Field:    "moduleName",
		Context:  map[string]string{"Other": "/modules/billing2/module.yaml"},
		Hint:     "Rename one of the modules",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /modules/billing/module.yaml")
	assert.Contains(t, output, "Field: moduleName")
	assert.Contains(t, output, "Other: /modules/billing2/module.yaml")
	assert.Contains(t, output, "duplicate moduleName")
	assert.Contains(t, output, "Hint: Rename one of the modules")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid value", "module.yaml", "apiBaseUrl", "Use an http(s) URL")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "apiBaseUrl", detail.Field)
	assert.Equal(t, "Use an http(s) URL", detail.Hint)
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "module billing")

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "module billing")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "validation", err: fmt.Errorf("vet: %w", ErrValidation), want: ExitValidationError},
		{name: "connectivity", err: fmt.Errorf("dial: %w", ErrConnectivity), want: ExitConnectivityError},
		{name: "not found", err: NewNotFoundError("missing", "", ""), want: ExitNotFound},
		{name: "request failed", err: fmt.Errorf("GET: %w", ErrRequestFailed), want: ExitRequestFailed},
		{name: "explicit exit error", err: NewExitError(errors.New("boom"), 42), want: 42},
		{name: "unknown", err: errors.New("boom"), want: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", NewExitError(errors.New("boom"), 1).Error())
	assert.Equal(t, "Not Found", (&ExitError{Code: ExitNotFound}).Error())
}
