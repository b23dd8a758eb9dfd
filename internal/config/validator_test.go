package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
modulesDir: ./modules
apiBaseUrl: https://api.example.com/v1
server:
  addr: "localhost:8480"
query:
  staleTime: 1m30s
log:
  timestamps: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	assert.NoError(t, v.ValidateFile(path))
}

func TestValidator_Rejects(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{name: "relative base", data: map[string]any{"apiBaseUrl": "/api"}, field: "apiBaseUrl"},
		{name: "unknown key", data: map[string]any{"registry": "x"}, field: "registry"},
		{name: "addr without port", data: map[string]any{"server": map[string]any{"addr": "localhost"}}, field: "addr"},
		{name: "bad stale time", data: map[string]any{"query": map[string]any{"staleTime": "soon"}}, field: "staleTime"},
		{name: "timestamps not bool", data: map[string]any{"log": map[string]any{"timestamps": "yes"}}, field: "timestamps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			require.Error(t, err)

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs), err.Error())
			assert.Contains(t, errs.Error(), tt.field)
		})
	}
}

func TestValidator_MissingFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.Error(t, v.ValidateFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
	errs := ValidationErrors{{Field: "a", Message: "bad"}}
	assert.Contains(t, errs.Error(), "a: bad")
}
