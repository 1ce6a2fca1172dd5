package names

import (
	"context"
	"fmt"
	"time"
)

// Checker answers uniqueness checks in-process. It satisfies the controller's
// NameValidator contract.
type Checker struct {
	opts     Options
	registry *Registry
}

// NewChecker builds a checker with default options plus any overrides.
func NewChecker(fns ...OptionFn) (*Checker, error) {
	opts := NewOptions(fns...)
	registry, err := resolveRegistry(opts)
	if err != nil {
		return nil, fmt.Errorf("names: load registry: %w", err)
	}
	return &Checker{opts: opts, registry: registry}, nil
}

// IsNameValid reports true when name is not taken.
func (c *Checker) IsNameValid(ctx context.Context, name string) (bool, error) {
	if err := wait(ctx, c.opts.Latency); err != nil {
		return false, err
	}
	if c.opts.Failure != nil {
		return false, fmt.Errorf("names: %w", c.opts.Failure)
	}
	return !c.registry.IsTaken(name), nil
}

// Registry exposes the backing registry.
func (c *Checker) Registry() *Registry {
	return c.registry
}

func wait(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
