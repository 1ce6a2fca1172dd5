package names

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/taken_names.yaml
var dataFS embed.FS

const defaultRegistryPath = "data/taken_names.yaml"

type registryFile struct {
	Taken []string `yaml:"taken"`
}

// Registry is a set of taken names. Lookups fold case and trim whitespace.
type Registry struct {
	mu    sync.RWMutex
	taken map[string]string
}

// NewRegistry builds a registry holding names.
func NewRegistry(names ...string) *Registry {
	r := &Registry{taken: make(map[string]string, len(names))}
	for _, name := range names {
		r.Reserve(name)
	}
	return r
}

// LoadRegistry parses a YAML document of the form `taken: [name, ...]`.
func LoadRegistry(r io.Reader) (*Registry, error) {
	if r == nil {
		return nil, fmt.Errorf("names: missing reader")
	}
	var file registryFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("names: decode registry: %w", err)
	}
	return NewRegistry(file.Taken...), nil
}

// DefaultRegistry returns a fresh registry seeded from the embedded list.
func DefaultRegistry() (*Registry, error) {
	f, err := dataFS.Open(defaultRegistryPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadRegistry(f)
}

// Reserve marks name as taken. Blank names are ignored.
func (r *Registry) Reserve(name string) {
	key := normalize(name)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken == nil {
		r.taken = make(map[string]string)
	}
	r.taken[key] = strings.TrimSpace(name)
}

// Release removes name from the registry.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.taken, normalize(name))
}

// IsTaken reports whether name is reserved.
func (r *Registry) IsTaken(name string) bool {
	key := normalize(name)
	if key == "" || r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.taken[key]
	return ok
}

// Names lists the reserved names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.taken))
	for _, name := range r.taken {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
