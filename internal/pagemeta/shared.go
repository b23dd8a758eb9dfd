package pagemeta

import (
	"sync"

	"github.com/opmodel/mfe/internal/descriptor"
)

// shared is the well-known process slot for the page metadata store.
var (
	sharedMu sync.Mutex
	shared   *Store
)

// Shared returns the process-wide store, allocating it on first use.
// Later calls reuse the same instance and only seed defaults for modules
// not seen before, so overrides survive module reinitialization.
func Shared(descs []descriptor.Descriptor) *Store {
	sharedMu.Lock()
	s := shared
	if s == nil {
		s = New(nil)
		shared = s
	}
	sharedMu.Unlock()

	s.Seed(descs)
	return s
}
