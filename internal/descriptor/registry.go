package descriptor

import (
	"fmt"
	"sort"

	oerrors "github.com/opmodel/mfe/internal/errors"
)

// Registry is an immutable, name-indexed set of descriptors.
type Registry struct {
	byName map[string]Descriptor
	names  []string
}

// NewRegistry builds a registry, rejecting invalid descriptors and duplicate names.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if err := Validate(d); err != nil {
			return nil, err
		}
		if prev, ok := r.byName[d.ModuleName]; ok {
			return nil, &oerrors.DetailError{
				Type:     "validation failed",
				Message:  fmt.Sprintf("moduleName %q is declared more than once", d.ModuleName),
				Location: d.Path,
				Field:    "moduleName",
				Context:  map[string]string{"First declared in": prev.Path},
				Hint:     "moduleName must be unique across all loaded modules.",
				Cause:    oerrors.ErrValidation,
			}
		}
		r.byName[d.ModuleName] = d
		r.names = append(r.names, d.ModuleName)
	}
	sort.Strings(r.names)
	return r, nil
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns module names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the descriptor for name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// All returns every descriptor sorted by module name.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}

// APIBases returns moduleName -> apiBaseUrl for modules that declare one.
func (r *Registry) APIBases() map[string]string {
	out := make(map[string]string)
	for n, d := range r.byName {
		if d.APIBaseURL != "" {
			out[n] = d.APIBaseURL
		}
	}
	return out
}
