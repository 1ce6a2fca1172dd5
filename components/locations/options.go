package locations

import (
	"net/http"
	"time"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Latency delays every in-process fetch and handler response, mimicking
	// a remote API.
	Latency time.Duration
	// Failure, when set, is returned by Source.Locations and turns handler
	// responses into 503s.
	Failure error

	Locations []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/locations",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    250,
		MaxLimit:        500,
		EmptySearchMode: EmptySearchTop,
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
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 250
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 500
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/locations"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Latency < 0 {
		opts.Latency = 0
	}
	if opts.Locations != nil {
		opts.Locations = append([]string{}, opts.Locations...)
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

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
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

func WithLocations(locations []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if locations == nil {
			o.Locations = nil
			return
		}
		o.Locations = append([]string{}, locations...)
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func resolveLocations(opts Options) ([]string, error) {
	if opts.Locations != nil {
		return append([]string{}, opts.Locations...), nil
	}
	return DefaultLocations()
}
