package names

import (
	"fmt"
	"net/http"
)

// Component bundles the registry, checker and handler behind one
// configuration so the in-process checker and the HTTP endpoint agree.
type Component struct {
	opts    Options
	checker *Checker
}

// New constructs a component; the registry is resolved once and shared.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	registry, err := resolveRegistry(opts)
	if err != nil {
		return nil, fmt.Errorf("names: load registry: %w", err)
	}
	opts.Registry = registry
	checker, err := NewChecker(func(o *Options) { *o = opts })
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, checker: checker}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return c.opts
}

// Checker returns the in-process validator.
func (c *Component) Checker() *Checker {
	return c.checker
}

// Registry returns the shared registry.
func (c *Component) Registry() *Registry {
	return c.opts.Registry
}

// Handler returns the validation handler.
func (c *Component) Handler() (http.Handler, error) {
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
