package names

import (
	"net/http"
	"time"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	NameParam string
	Guard     GuardFunc

	// Latency delays every check, mimicking a remote API.
	Latency time.Duration
	// Failure, when set, makes every check fail.
	Failure error

	// RateLimit is the sustained number of checks per second accepted by the
	// handler; zero disables limiting. RateBurst is the bucket size.
	RateLimit float64
	RateBurst int

	Registry *Registry
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/names/validate",
		NameParam: "name",
		RateLimit: 20,
		RateBurst: 40,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/names/validate"
	}
	if opts.NameParam == "" {
		opts.NameParam = "name"
	}
	if opts.Latency < 0 {
		opts.Latency = 0
	}
	if opts.RateLimit < 0 {
		opts.RateLimit = 0
	}
	if opts.RateLimit > 0 && opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithNameParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.NameParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLatency(latency time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Latency = latency
	}
}

func WithFailure(err error) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Failure = err
	}
}

func WithRateLimit(perSecond float64, burst int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RateLimit = perSecond
		o.RateBurst = burst
	}
}

// WithRegistry shares an existing registry.
func WithRegistry(registry *Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

// WithTakenNames replaces the embedded list with names.
func WithTakenNames(names []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = NewRegistry(names...)
	}
}

func resolveRegistry(opts Options) (*Registry, error) {
	if opts.Registry != nil {
		return opts.Registry, nil
	}
	return DefaultRegistry()
}
