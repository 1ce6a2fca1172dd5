package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-entryform/pkg/debounce"
)

// DefaultValidationTimeout bounds a single validator call.
const DefaultValidationTimeout = 5 * time.Second

// Option configures the controller.
type Option func(*Controller)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebounce overrides the validation quiet window.
func WithDebounce(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.debounceDelay = delay
		}
	}
}

// WithClock injects the clock driving the debouncer.
func WithClock(clock debounce.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithValidationTimeout bounds each validator call. Zero disables the bound.
func WithValidationTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout >= 0 {
			c.validationTimeout = timeout
		}
	}
}

// WithListener registers a listener before the controller starts.
func WithListener(listener Listener) Option {
	return func(c *Controller) {
		if listener != nil {
			c.listeners = append(c.listeners, listenerEntry{id: c.nextListenerID(), fn: listener})
		}
	}
}
