// Package pagemeta holds per-module display names and titles, seeded from
// module descriptors and overridable at runtime.
//
// Defaults discovered from descriptors are retained for the lifetime of the
// process so that a reset restores the discovered value rather than clearing it.
package pagemeta

import (
	"sync"

	"github.com/opmodel/mfe/internal/descriptor"
	"github.com/opmodel/mfe/internal/output"
)

// Snapshot is a point-in-time copy of the live mappings.
type Snapshot struct {
	PageNames  map[string]string `json:"pageNames"`
	PageTitles map[string]string `json:"pageTitles"`
}

// Store is the page metadata store.
type Store struct {
	mu sync.RWMutex

	defaultNames  map[string]string
	defaultTitles map[string]string

	pageNames  map[string]string
	pageTitles map[string]string

	subs   map[uint64]func(Snapshot)
	nextID uint64
}

// New builds a store whose defaults and live values come from descs.
// Descriptors without pageName or pageTitle seed nothing for that field.
func New(descs []descriptor.Descriptor) *Store {
	s := &Store{
		defaultNames:  make(map[string]string),
		defaultTitles: make(map[string]string),
		pageNames:     make(map[string]string),
		pageTitles:    make(map[string]string),
		subs:          make(map[uint64]func(Snapshot)),
	}
	s.Seed(descs)
	return s
}

// Seed records defaults for modules not seen before and copies them into
// the live mappings. Defaults already retained are never replaced, and live
// overrides are never touched.
func (s *Store) Seed(descs []descriptor.Descriptor) {
	s.mu.Lock()
	added := 0
	for _, d := range descs {
		if d.PageName != "" {
			if _, ok := s.defaultNames[d.ModuleName]; !ok {
				s.defaultNames[d.ModuleName] = d.PageName
				if _, live := s.pageNames[d.ModuleName]; !live {
					s.pageNames[d.ModuleName] = d.PageName
				}
				added++
			}
		}
		if d.PageTitle != "" {
			if _, ok := s.defaultTitles[d.ModuleName]; !ok {
				s.defaultTitles[d.ModuleName] = d.PageTitle
				if _, live := s.pageTitles[d.ModuleName]; !live {
					s.pageTitles[d.ModuleName] = d.PageTitle
				}
				added++
			}
		}
	}
	s.mu.Unlock()

	if added > 0 {
		output.Debug("seeded page metadata defaults", "fields", added)
		s.notify()
	}
}

// PageName returns the live display name for module, or "".
func (s *Store) PageName(module string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageNames[module]
}

// PageTitle returns the live title for module, or "".
func (s *Store) PageTitle(module string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageTitles[module]
}

// PageNames returns a copy of the live display names.
func (s *Store) PageNames() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.pageNames)
}

// PageTitles returns a copy of the live titles.
func (s *Store) PageTitles() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.pageTitles)
}

// Snapshot returns copies of both live mappings.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{PageNames: copyMap(s.pageNames), PageTitles: copyMap(s.pageTitles)}
}

// Defaults returns copies of the retained discovered defaults.
func (s *Store) Defaults() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{PageNames: copyMap(s.defaultNames), PageTitles: copyMap(s.defaultTitles)}
}

// SetPageName overrides the display name for one module.
func (s *Store) SetPageName(module, name string) {
	s.set(s.pageNames, module, name)
}

// SetPageTitle overrides the title for one module.
func (s *Store) SetPageTitle(module, title string) {
	s.set(s.pageTitles, module, title)
}

// ResetPageName restores the discovered default name, or "" if there was none.
func (s *Store) ResetPageName(module string) {
	s.reset(s.pageNames, s.defaultNames, module)
}

// ResetPageTitle restores the discovered default title, or "" if there was none.
func (s *Store) ResetPageTitle(module string) {
	s.reset(s.pageTitles, s.defaultTitles, module)
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(live map[string]string, module, value string) {
	s.mu.Lock()
	live[module] = value
	s.mu.Unlock()
	s.notify()
}

func (s *Store) reset(live, defaults map[string]string, module string) {
	s.mu.Lock()
	live[module] = defaults[module]
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := Snapshot{PageNames: copyMap(s.pageNames), PageTitles: copyMap(s.pageTitles)}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
