// Package controller owns the entry form state and coordinates the two
// collaborators: a LocationSource supplying country options and a
// NameValidator answering uniqueness checks behind a debounce window.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-entryform/pkg/debounce"
	"github.com/goliatone/go-entryform/pkg/form"
)

// LocationSource supplies the selectable country names.
type LocationSource interface {
	Locations(ctx context.Context) ([]string, error)
}

// NameValidator reports whether a name is still available.
type NameValidator interface {
	IsNameValid(ctx context.Context, name string) (bool, error)
}

// LocationSourceFunc adapts a function to LocationSource.
type LocationSourceFunc func(ctx context.Context) ([]string, error)

func (f LocationSourceFunc) Locations(ctx context.Context) ([]string, error) { return f(ctx) }

// NameValidatorFunc adapts a function to NameValidator.
type NameValidatorFunc func(ctx context.Context, name string) (bool, error)

func (f NameValidatorFunc) IsNameValid(ctx context.Context, name string) (bool, error) {
	return f(ctx, name)
}

// Listener receives a snapshot after every state transition. Snapshots may be
// delivered out of order across goroutines; compare State.Version.
type Listener func(form.State)

var (
	// ErrMissingLocations is returned by New without a LocationSource.
	ErrMissingLocations = errors.New("controller: location source is required")
	// ErrMissingValidator is returned by New without a NameValidator.
	ErrMissingValidator = errors.New("controller: name validator is required")
)

type listenerEntry struct {
	id int
	fn Listener
}

// Controller is the form controller. All methods are safe for concurrent use;
// transitions are serialised.
type Controller struct {
	mu        sync.Mutex
	state     form.State
	listeners []listenerEntry
	lastID    int

	locations LocationSource
	validator NameValidator
	logger    *zap.Logger

	clock             debounce.Clock
	debounceDelay     time.Duration
	validationTimeout time.Duration
	debouncer         *debounce.Debouncer

	ctx      context.Context
	cancel   context.CancelFunc
	inflight context.CancelFunc
	wg       sync.WaitGroup
	closed   bool
}

// New wires a controller around the two collaborators.
func New(locations LocationSource, validator NameValidator, opts ...Option) (*Controller, error) {
	if locations == nil {
		return nil, ErrMissingLocations
	}
	if validator == nil {
		return nil, ErrMissingValidator
	}

	c := &Controller{
		locations:         locations,
		validator:         validator,
		logger:            zap.NewNop(),
		clock:             debounce.RealClock{},
		debounceDelay:     debounce.DefaultDelay,
		validationTimeout: DefaultValidationTimeout,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.debouncer = debounce.New(c.debounceDelay, debounce.WithClock(c.clock))
	return c, nil
}

// Initialize fetches the country options once and selects the first one.
// Failures are logged; the country stays unset.
func (c *Controller) Initialize(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	options, err := c.locations.Locations(ctx)
	if err != nil {
		c.logger.Warn("fetch locations",
			zap.Error(errors.Join(form.ErrLocationFetch, err)))
		c.dispatch(form.LocationsFailed{Err: err})
		return
	}
	c.logger.Debug("locations loaded", zap.Int("count", len(options)))
	c.dispatch(form.LocationsLoaded{Options: options})
}

// OnNameChange updates the name right away and schedules a debounced
// validation of value.
func (c *Controller) OnNameChange(value string) {
	next := c.dispatch(form.NameChanged{Value: value})
	revision := next.NameRevision
	c.debouncer.Schedule(func() { c.validate(revision, value) })
}

// OnCountryChange selects value as the current country.
func (c *Controller) OnCountryChange(value string) {
	c.dispatch(form.CountryChanged{Value: value})
}

// OnAdd commits the current pair. It reports whether the table grew; a
// disabled Add or a duplicate leaves the table untouched.
func (c *Controller) OnAdd() bool {
	c.mu.Lock()
	before := c.state
	c.mu.Unlock()
	if !before.CanAdd() {
		c.logger.Debug("add ignored", zap.String("name", before.Name), zap.String("error", before.Error))
		return false
	}

	next := c.dispatch(form.AddRequested{})
	if len(next.Table) == len(before.Table) {
		c.logger.Info("duplicate entry",
			zap.String("name", before.Name),
			zap.String("country", before.Country))
		return false
	}

	c.abandonValidation()
	c.logger.Info("entry added",
		zap.String("name", before.Name),
		zap.String("country", before.Country),
		zap.Int("rows", len(next.Table)))
	return true
}

// OnClear resets the transient fields; the table is left alone.
func (c *Controller) OnClear() {
	c.dispatch(form.ClearRequested{})
	c.abandonValidation()
}

// State returns a snapshot of the current state.
func (c *Controller) State() form.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers a listener and returns a function removing it.
func (c *Controller) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextListenerID()
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: listener})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, entry := range c.listeners {
			if entry.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Settle runs any pending validation immediately and waits for in-flight
// validations to finish or ctx to end.
func (c *Controller) Settle(ctx context.Context) error {
	c.debouncer.Flush()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the debouncer, cancels in-flight validations and waits for
// them to return.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Stop()
	c.cancel()
	c.wg.Wait()
	return nil
}

func (c *Controller) validate(revision uint64, name string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := c.requestContext()
	c.inflight = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	defer c.wg.Done()
	defer cancel()

	c.dispatch(form.ValidationStarted{Revision: revision})

	valid, err := c.validator.IsNameValid(ctx, name)
	if c.ctx.Err() != nil {
		return
	}

	current := c.State()
	if current.NameRevision != revision {
		c.logger.Debug("discarding stale validation",
			zap.String("name", name),
			zap.Uint64("revision", revision),
			zap.Uint64("current", current.NameRevision))
		return
	}

	if err != nil {
		c.logger.Warn("validate name",
			zap.String("name", name),
			zap.Error(errors.Join(form.ErrValidation, err)))
		c.dispatch(form.ValidationFailed{Revision: revision, Err: err})
		return
	}
	c.dispatch(form.ValidationResolved{Revision: revision, Valid: valid})
}

func (c *Controller) requestContext() (context.Context, context.CancelFunc) {
	if c.validationTimeout > 0 {
		return context.WithTimeout(c.ctx, c.validationTimeout)
	}
	return context.WithCancel(c.ctx)
}

// abandonValidation drops the pending debounced call and cancels any request
// already on the wire.
func (c *Controller) abandonValidation() {
	c.debouncer.Cancel()
	c.mu.Lock()
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	c.mu.Unlock()
}

func (c *Controller) dispatch(action form.Action) form.State {
	c.mu.Lock()
	c.state = form.Reduce(c.state, action)
	snapshot := c.state.Clone()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, entry := range c.listeners {
		listeners = append(listeners, entry.fn)
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot.Clone())
	}
	return snapshot
}

func (c *Controller) nextListenerID() int {
	c.lastID++
	return c.lastID
}
