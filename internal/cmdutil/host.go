package cmdutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/query"
)

// HostClient talks to a running host's API. It rides on the data access
// client with an absolute base so host errors classify the same way.
type HostClient struct {
	client *query.Client
}

// NewHostClient returns a client for the host at addr ("host:port" or a URL).
func NewHostClient(addr string, hc *http.Client) *HostClient {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &HostClient{client: &query.Client{
		Resolver: query.Resolver{DefaultBase: base},
		HTTP:     hc,
	}}
}

// State returns the whole store snapshot, or one module's slice when module is set.
func (c *HostClient) State(ctx context.Context, module string) (map[string]any, error) {
	endpoint := "/api/state"
	if module != "" {
		endpoint += "/" + url.PathEscape(module)
	}
	var out map[string]any
	return out, c.call(ctx, http.MethodGet, endpoint, nil, &out)
}

// MergeState shallow-merges partial into module's slice and returns the result.
func (c *HostClient) MergeState(ctx context.Context, module string, partial map[string]any) (map[string]any, error) {
	var out map[string]any
	return out, c.call(ctx, http.MethodPatch, "/api/state/"+url.PathEscape(module), partial, &out)
}

// ResetState removes module's slice.
func (c *HostClient) ResetState(ctx context.Context, module string) error {
	return c.call(ctx, http.MethodDelete, "/api/state/"+url.PathEscape(module), nil, nil)
}

type hostError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *HostClient) call(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.client.Do(ctx, query.Request{Method: method, Endpoint: endpoint, Body: body})
	if err != nil {
		var se *query.StatusError
		if errors.As(err, &se) {
			return hostStatusError(se)
		}
		if errors.Is(err, oerrors.ErrConnectivity) {
			return oerrors.NewConnectivityError(
				"host API is not reachable",
				map[string]string{"url": c.client.Resolver.DefaultBase},
				"Start a host with 'mfe serve' or pass --addr.",
			)
		}
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decoding host response: %w", err)
	}
	return nil
}

func hostStatusError(se *query.StatusError) error {
	var he hostError
	_ = json.Unmarshal(se.Body, &he)
	msg := he.Error
	if msg == "" {
		msg = se.Error()
	}
	switch se.StatusCode {
	case http.StatusNotFound:
		return oerrors.NewNotFoundError(msg, "", "Run 'mfe modules list' to see loaded modules.")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return oerrors.Wrap(oerrors.ErrValidation, msg)
	default:
		return fmt.Errorf("%s: %w", msg, se)
	}
}

// ParseAssignments turns key=value pairs into a partial slice. Values that
// parse as JSON keep their type; anything else is a string.
func ParseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, raw, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("invalid assignment %q", p), "", "", "Use key=value, e.g. count=3 or name=\"a b\".")
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[k] = v
	}
	return out, nil
}
