package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores surfaces by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[string]Surface),
	}
}

// Register adds a surface by its Name(). Duplicate names return an error.
func (r *Registry) Register(surface Surface) error {
	if surface == nil {
		return fmt.Errorf("render: surface is required")
	}
	name := surface.Name()
	if name == "" {
		return fmt.Errorf("render: surface name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[name]; exists {
		return fmt.Errorf("render: surface %q already registered", name)
	}

	r.surfaces[name] = surface
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(surface Surface) {
	if err := r.Register(surface); err != nil {
		panic(err)
	}
}

// Get retrieves a surface by name.
func (r *Registry) Get(name string) (Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	surface, ok := r.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("render: surface %q not found", name)
	}
	return surface, nil
}

// List returns a sorted list of surface names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.surfaces))
	for name := range r.surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a surface is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.surfaces[name]
	return ok
}
