package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate validates raw config data as decoded from the file.
// Unknown keys are rejected.
func (v *Validator) Validate(data map[string]any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.schema.Unify(v.ctx.Encode(data))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return toValidationErrors(err)
	}

	var errs ValidationErrors
	if q, ok := data["query"].(map[string]any); ok {
		if s, ok := q["staleTime"].(string); ok {
			cfg := Config{Query: QueryConfig{StaleTime: s}}
			if _, err := cfg.StaleTimeDuration(); err != nil {
				errs = append(errs, ValidationError{Field: KeyQueryStaleTime, Message: err.Error()})
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	return v.Validate(data)
}

func toValidationErrors(err error) error {
	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	if len(errs) == 0 {
		return errors.Join(err)
	}
	return errs
}
