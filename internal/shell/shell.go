// Package shell is the host runtime. It discovers module descriptors and
// binds each module to the shared state container, the page metadata
// store, the alert store, the address rewriter, and data access.
package shell

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/opmodel/mfe/internal/alert"
	"github.com/opmodel/mfe/internal/descriptor"
	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/pagemeta"
	"github.com/opmodel/mfe/internal/query"
	"github.com/opmodel/mfe/internal/store"
)

// Options configures a Shell.
type Options struct {
	// ModulesDir holds one subdirectory per module. Empty means no modules.
	ModulesDir string

	// DefaultAPIBase is used for modules without an apiBaseUrl.
	DefaultAPIBase string

	// TokenFile is the persisted bearer token.
	TokenFile string

	// StaleTime is how long query results are served from cache.
	StaleTime time.Duration

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Store defaults to store.Default().
	Store *store.Store

	// Alerts defaults to alert.Default().
	Alerts *alert.Store

	// Pages defaults to the process-wide pagemeta store.
	Pages *pagemeta.Store
}

// Shell is the host runtime.
type Shell struct {
	opts   Options
	store  *store.Store
	alerts *alert.Store
	pages  *pagemeta.Store
	cache  *query.Cache

	mu       sync.RWMutex
	registry *descriptor.Registry
	client   *query.Client
}

// New discovers modules and wires the runtime.
func New(opts Options) (*Shell, error) {
	reg, err := discover(opts.ModulesDir)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		opts:   opts,
		store:  opts.Store,
		alerts: opts.Alerts,
		pages:  opts.Pages,
		cache:  query.NewCache(opts.StaleTime),
	}
	if s.store == nil {
		s.store = store.Default()
	}
	if s.alerts == nil {
		s.alerts = alert.Default()
	}
	if s.pages == nil {
		s.pages = pagemeta.Shared(reg.All())
	} else {
		s.pages.Seed(reg.All())
	}

	s.install(reg)
	output.Debug("shell ready", "modules", reg.Len(), "dir", opts.ModulesDir)
	return s, nil
}

// Registry returns the current set of descriptors.
func (s *Shell) Registry() *descriptor.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Store returns the global state container.
func (s *Shell) Store() *store.Store { return s.store }

// Alerts returns the alert store.
func (s *Shell) Alerts() *alert.Store { return s.alerts }

// Pages returns the page metadata store.
func (s *Shell) Pages() *pagemeta.Store { return s.pages }

// Cache returns the query cache shared by all modules.
func (s *Shell) Cache() *query.Cache { return s.cache }

// Client returns the data access client bound to no module.
func (s *Shell) Client() *query.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Module returns the runtime view of the named module.
func (s *Shell) Module(name string) (*Module, error) {
	d, ok := s.Registry().Get(name)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q is not loaded", name),
			s.opts.ModulesDir,
			"Run 'mfe modules list' to see loaded modules.",
		)
	}
	return newModule(s, d), nil
}

// Reload rediscovers descriptors. Page metadata keeps its instance and
// overrides; state of modules that disappeared is reset. On error the
// previous modules stay loaded.
func (s *Shell) Reload() error {
	reg, err := discover(s.opts.ModulesDir)
	if err != nil {
		return err
	}

	old := s.Registry()
	var removed []string
	for _, name := range old.Names() {
		if _, ok := reg.Get(name); !ok {
			removed = append(removed, name)
		}
	}

	s.pages.Seed(reg.All())
	s.install(reg)
	for _, name := range removed {
		s.store.ResetStateFor(name)
	}

	output.Info("modules reloaded", "loaded", reg.Len(), "removed", len(removed))
	return nil
}

// Watch reloads on descriptor changes until ctx is done.
func (s *Shell) Watch(ctx context.Context) error {
	if s.opts.ModulesDir == "" {
		return fmt.Errorf("watch: no modules directory configured")
	}
	return descriptor.Watch(ctx, s.opts.ModulesDir, descriptor.DefaultDebounce, func() {
		if err := s.Reload(); err != nil {
			output.Warn("reload failed, keeping previous modules", "error", err)
		}
	})
}

func (s *Shell) install(reg *descriptor.Registry) {
	client := &query.Client{
		Resolver: query.Resolver{
			Bases:       reg.APIBases(),
			DefaultBase: s.opts.DefaultAPIBase,
		},
		HTTP:  s.opts.HTTPClient,
		Token: query.FileToken(s.opts.TokenFile),
		Cache: s.cache,
	}

	s.mu.Lock()
	s.registry = reg
	s.client = client
	s.mu.Unlock()
}

func discover(dir string) (*descriptor.Registry, error) {
	if dir == "" {
		return descriptor.NewRegistry()
	}
	return descriptor.Discover(dir)
}
