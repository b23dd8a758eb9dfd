package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

// Request describes one call through the data access layer.
type Request struct {
	// Key identifies the result in the cache. Empty disables caching.
	Key string

	// Endpoint is absolute, or relative to the module's API base.
	Endpoint string

	// Module defaults to the client's current module.
	Module string

	// Method defaults to GET.
	Method string

	// Body is sent as JSON unless it is a []byte or io.Reader.
	Body any

	// Header is merged over the JSON content type and under Authorization.
	Header http.Header

	// GetAuthToken overrides the client's token source for this call.
	GetAuthToken TokenFunc
}

// Response is a successful (2xx) response.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client executes module-aware requests.
type Client struct {
	// Resolver maps modules to API bases.
	Resolver Resolver

	// Module is the caller's current module, used when a request names none.
	Module string

	// HTTP defaults to http.DefaultClient.
	HTTP *http.Client

	// Token is the fallback token source, normally the persisted token.
	Token TokenFunc

	// Cache is optional.
	Cache *Cache
}

// WithModule returns a copy of c bound to module, sharing the cache.
func (c *Client) WithModule(module string) *Client {
	cp := *c
	cp.Module = module
	return &cp
}

// Build assembles the HTTP request: resolved URL, merged headers, bearer token.
func (c *Client) Build(ctx context.Context, req Request) (*http.Request, error) {
	module := req.Module
	if module == "" {
		module = c.Module
	}

	target, err := c.Resolver.Resolve(req.Endpoint, module)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}

	token, err := c.token(ctx, req)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

// Do executes req. Non-2xx responses return a *StatusError; transport
// failures are wrapped with ErrConnectivity. Nothing is retried.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	target := httpReq.URL.String()
	output.Debug("module request", "module", c.moduleFor(req), "method", httpReq.Method, "url", target)

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", httpReq.Method, target, oerrors.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w: %w", httpReq.Method, target, oerrors.ErrConnectivity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{
			Method:     httpReq.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       data,
		}
	}

	return &Response{
		URL:        target,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Query runs req through the cache keyed by req.Key.
func (c *Client) Query(ctx context.Context, req Request) Result {
	fetch := func(ctx context.Context) ([]byte, error) {
		resp, err := c.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}

	if c.Cache == nil || req.Key == "" {
		return resultOf(fetch(ctx))
	}
	return c.Cache.Fetch(ctx, req.Key, fetch)
}

func (c *Client) token(ctx context.Context, req Request) (string, error) {
	src := req.GetAuthToken
	if src == nil {
		src = c.Token
	}
	if src == nil {
		return "", nil
	}
	token, err := src(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving auth token: %w", err)
	}
	return token, nil
}

func (c *Client) moduleFor(req Request) string {
	if req.Module != "" {
		return req.Module
	}
	return c.Module
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}
