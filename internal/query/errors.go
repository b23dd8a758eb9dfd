package query

import (
	"fmt"
	"net/http"

	oerrors "github.com/opmodel/mfe/internal/errors"
)

// maxErrorBody caps how much of a failed response body is kept on the error.
const maxErrorBody = 4 << 10

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, status)
}

// Unwrap classifies the error as a failed request.
func (e *StatusError) Unwrap() error {
	return oerrors.ErrRequestFailed
}
