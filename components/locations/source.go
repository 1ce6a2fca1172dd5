package locations

import (
	"context"
	"fmt"
	"time"
)

// Source is an in-process location source. It satisfies the controller's
// LocationSource contract without a network hop.
type Source struct {
	opts Options
}

// NewSource builds a source with default options plus any overrides.
func NewSource(fns ...OptionFn) *Source {
	return &Source{opts: NewOptions(fns...)}
}

// Locations returns every configured location after the simulated latency.
func (s *Source) Locations(ctx context.Context) ([]string, error) {
	opts := DefaultOptions()
	if s != nil {
		opts = s.opts
	}
	if err := wait(ctx, opts.Latency); err != nil {
		return nil, err
	}
	if opts.Failure != nil {
		return nil, fmt.Errorf("locations: %w", opts.Failure)
	}
	return resolveLocations(opts)
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
