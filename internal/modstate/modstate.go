// Package modstate exposes a module's own slice of the global state container.
package modstate

import (
	"github.com/opmodel/mfe/internal/descriptor"
	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/store"
)

// Slice is a module's state: a flat record merged field by field.
type Slice map[string]any

// empty is returned for every absent read. Consumers compare slices by
// identity to detect change, so it must be one long-lived instance.
// It must never be written to.
var empty = Slice{}

// Hook is a read/merge/reset view over one key of a store.
type Hook struct {
	store     *store.Store
	namespace string
}

// New binds a hook to namespace in s.
func New(s *store.Store, namespace string) *Hook {
	return &Hook{store: s, namespace: namespace}
}

// For binds a hook to the namespace derived from d.
func For(s *store.Store, d descriptor.Descriptor) *Hook {
	return New(s, d.ModuleName)
}

// Namespace returns the store key this hook operates on.
func (h *Hook) Namespace() string {
	return h.namespace
}

// State returns the current slice, or the shared empty slice when absent.
func (h *Hook) State() Slice {
	v, ok := h.store.Get(h.namespace)
	if !ok {
		return empty
	}
	return asSlice(h.namespace, v)
}

// SetState shallow-merges partial over the freshest slice and stores the
// result as a new map. Fields in partial win.
func (h *Hook) SetState(partial Slice) {
	h.store.Update(h.namespace, func(cur any, ok bool) any {
		base := empty
		if ok {
			base = asSlice(h.namespace, cur)
		}
		merged := make(Slice, len(base)+len(partial))
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range partial {
			merged[k] = v
		}
		return merged
	})
}

// Reset removes the module's slice from the store.
func (h *Hook) Reset() {
	h.store.ResetStateFor(h.namespace)
}

// IsEmpty reports whether s is the shared empty default.
func IsEmpty(s Slice) bool {
	return len(s) == 0 && sameMap(s, empty)
}

func asSlice(namespace string, v any) Slice {
	switch t := v.(type) {
	case Slice:
		return t
	case map[string]any:
		return Slice(t)
	default:
		output.Debug("state slice has unexpected shape, reading as empty",
			"module", namespace, "type", typeName(v))
		return empty
	}
}
