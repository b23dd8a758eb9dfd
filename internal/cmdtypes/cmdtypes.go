// Package cmdtypes provides shared types for the cmd package and cmdutil.
// It is separate from internal/cmd to avoid import cycles.
package cmdtypes

import (
	"github.com/opmodel/mfe/internal/config"
	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the effective configuration after precedence resolution.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Flags holds the raw global flag values.
	Flags config.Flags

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess           = oerrors.ExitSuccess
	ExitGeneralError      = oerrors.ExitGeneralError
	ExitValidationError   = oerrors.ExitValidationError
	ExitConnectivityError = oerrors.ExitConnectivityError
	ExitPermissionDenied  = oerrors.ExitPermissionDenied
	ExitNotFound          = oerrors.ExitNotFound
	ExitRequestFailed     = oerrors.ExitRequestFailed
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// ExitFor wraps err with the exit code derived from its sentinel.
// printed marks errors the command already reported.
func ExitFor(err error, printed bool) error {
	if err == nil {
		return nil
	}
	code := oerrors.ExitCodeFromError(err)
	output.Debug("command failed", "exit", oerrors.ExitCodeName(code), "code", code)
	return &ExitError{Err: err, Code: code, Printed: printed}
}
