// Package query is the module-aware data access layer.
//
// A request names an endpoint and, optionally, the module it belongs to.
// Relative endpoints are resolved against the module's apiBaseUrl from its
// descriptor, falling back to a process-wide default base. Results are
// cached by a caller-supplied key.
package query

import (
	"fmt"
	"net/url"
	"strings"

	oerrors "github.com/opmodel/mfe/internal/errors"
)

// ErrNoBaseURL is returned when a relative endpoint has no base to resolve against.
var ErrNoBaseURL = oerrors.Wrap(oerrors.ErrValidation, "no API base URL configured")

// Resolver maps modules to API base URLs.
type Resolver struct {
	// Bases maps module name to apiBaseUrl.
	Bases map[string]string

	// DefaultBase is used for modules without an apiBaseUrl.
	DefaultBase string
}

// Resolve returns the absolute URL for endpoint as seen by module.
// Absolute endpoints are returned verbatim.
func (r Resolver) Resolve(endpoint, module string) (string, error) {
	if IsAbsolute(endpoint) {
		return endpoint, nil
	}

	base := r.Bases[module]
	if base == "" {
		base = r.DefaultBase
	}
	if base == "" {
		return "", &oerrors.DetailError{
			Type:    "configuration gap",
			Message: fmt.Sprintf("cannot resolve endpoint %q: no apiBaseUrl for module %q and no default base", endpoint, module),
			Field:   "apiBaseUrl",
			Hint:    "Set apiBaseUrl in the module descriptor or configure a default with --api-base-url / MFE_API_BASE_URL.",
			Cause:   ErrNoBaseURL,
		}
	}

	return Join(base, endpoint), nil
}

// Join concatenates base and endpoint with exactly one slash between them.
func Join(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// IsAbsolute reports whether endpoint carries its own scheme and host.
func IsAbsolute(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
