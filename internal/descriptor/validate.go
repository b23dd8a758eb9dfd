package descriptor

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/mfe/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

var (
	// schemaMu serializes use of schemaCtx; a cue.Context is not safe for concurrent use.
	schemaMu   sync.Mutex
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

// loadSchema compiles the embedded schema once per process.
func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
		if v.Err() != nil {
			schemaErr = fmt.Errorf("compiling descriptor schema: %w", v.Err())
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Descriptor"))
		if !schemaDef.Exists() {
			schemaErr = fmt.Errorf("descriptor schema has no #Descriptor definition")
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// Validate checks d against the embedded CUE schema.
func Validate(d Descriptor) error {
	ctx, def, err := loadSchema()
	if err != nil {
		return err
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()

	unified := def.Unify(ctx.Encode(d))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toValidationError(d, err)
	}
	return nil
}

// toValidationError turns the first CUE error into a DetailError.
func toValidationError(d Descriptor, err error) error {
	field := ""
	msg := err.Error()
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		field = strings.Join(errs[0].Path(), ".")
		format, args := errs[0].Msg()
		msg = fmt.Sprintf(format, args...)
	}

	hint := "Check the module descriptor against the documented fields."
	switch field {
	case "moduleName":
		hint = "moduleName must be lowercase alphanumeric with hyphens."
	case "apiBaseUrl":
		hint = "apiBaseUrl must be an absolute http(s) URL."
	}

	return &oerrors.DetailError{
		Type:     "validation failed",
		Message:  msg,
		Location: d.Path,
		Field:    field,
		Hint:     hint,
		Cause:    oerrors.ErrValidation,
	}
}
