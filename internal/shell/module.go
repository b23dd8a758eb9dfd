package shell

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/opmodel/mfe/internal/alert"
	"github.com/opmodel/mfe/internal/descriptor"
	"github.com/opmodel/mfe/internal/link"
	"github.com/opmodel/mfe/internal/modstate"
	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/query"
)

// Module is one module's view of the host runtime. Everything it exposes
// is scoped by the module's own name.
type Module struct {
	shell    *Shell
	desc     descriptor.Descriptor
	state    *modstate.Hook
	rewriter link.Rewriter
	log      *log.Logger
}

func newModule(s *Shell, d descriptor.Descriptor) *Module {
	return &Module{
		shell:    s,
		desc:     d,
		state:    modstate.For(s.store, d),
		rewriter: link.For(d),
		log:      output.ModuleLogger(d.ModuleName),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return m.desc.ModuleName }

// Descriptor returns the module's descriptor.
func (m *Module) Descriptor() descriptor.Descriptor { return m.desc }

// State returns the module's state hook.
func (m *Module) State() *modstate.Hook { return m.state }

// Href rewrites a module-relative path.
func (m *Module) Href(to string) string { return m.rewriter.Href(to) }

// Link rewrites a module-relative path and forwards props.
func (m *Module) Link(to string, props map[string]string) link.Element {
	return m.rewriter.Link(to, props)
}

// PageName returns the module's live page name.
func (m *Module) PageName() string { return m.shell.pages.PageName(m.desc.ModuleName) }

// PageTitle returns the module's live page title.
func (m *Module) PageTitle() string { return m.shell.pages.PageTitle(m.desc.ModuleName) }

// SetPageName overrides the module's page name.
func (m *Module) SetPageName(name string) { m.shell.pages.SetPageName(m.desc.ModuleName, name) }

// SetPageTitle overrides the module's page title.
func (m *Module) SetPageTitle(title string) { m.shell.pages.SetPageTitle(m.desc.ModuleName, title) }

// QueryOption adjusts a module query.
type QueryOption func(*queryConfig)

type queryConfig struct {
	req        query.Request
	alertTitle string
}

// WithMethod sets the HTTP method.
func WithMethod(method string) QueryOption {
	return func(c *queryConfig) { c.req.Method = method }
}

// WithBody sets the request body.
func WithBody(body any) QueryOption {
	return func(c *queryConfig) { c.req.Body = body }
}

// WithHeader adds a request header.
func WithHeader(key, value string) QueryOption {
	return func(c *queryConfig) {
		if c.req.Header == nil {
			c.req.Header = make(map[string][]string)
		}
		c.req.Header.Add(key, value)
	}
}

// WithAuthToken overrides the persisted token for this call.
func WithAuthToken(fn query.TokenFunc) QueryOption {
	return func(c *queryConfig) { c.req.GetAuthToken = fn }
}

// WithAlertOnError raises a danger alert titled title when the query fails.
func WithAlertOnError(title string) QueryOption {
	return func(c *queryConfig) { c.alertTitle = title }
}

// Query fetches endpoint on behalf of the module, cached under key.
// Keys are scoped to the module; an empty key bypasses the cache.
func (m *Module) Query(ctx context.Context, key, endpoint string, opts ...QueryOption) query.Result {
	cfg := queryConfig{req: query.Request{Key: CacheKey(m.desc.ModuleName, key), Endpoint: endpoint}}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := m.shell.Client().WithModule(m.desc.ModuleName).Query(ctx, cfg.req)
	if res.Err != nil {
		m.log.Debug("query failed", "key", key, "endpoint", endpoint, "error", res.Err)
		if cfg.alertTitle != "" {
			m.shell.alerts.Set(alert.FromError(cfg.alertTitle, res.Err)...)
		}
	}
	return res
}

// CacheKey returns the shared-cache key for a module's query key.
func CacheKey(module, key string) string {
	if key == "" {
		return ""
	}
	return module + "/" + key
}
