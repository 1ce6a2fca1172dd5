// Package entryform wires the form controller to its collaborators. Callers
// that only need a working controller can use the factories here instead of
// assembling components by hand.
package entryform

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-entryform/components/locations"
	"github.com/goliatone/go-entryform/components/names"
	"github.com/goliatone/go-entryform/pkg/client"
	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/form"
	"github.com/goliatone/go-entryform/pkg/render"
	"github.com/goliatone/go-entryform/pkg/renderers/web"
)

// State aliases form.State for callers working from the top-level module.
type State = form.State

// Entry aliases form.Entry.
type Entry = form.Entry

// Table aliases form.Table.
type Table = form.Table

// LocationSource aliases controller.LocationSource.
type LocationSource = controller.LocationSource

// NameValidator aliases controller.NameValidator.
type NameValidator = controller.NameValidator

// Factory aliases render.Factory.
type Factory = render.Factory

// NewController builds a controller and fetches its country options.
func NewController(ctx context.Context, source LocationSource, validator NameValidator, options ...controller.Option) (*controller.Controller, error) {
	ctrl, err := controller.New(source, validator, options...)
	if err != nil {
		return nil, err
	}
	ctrl.Initialize(ctx)
	return ctrl, nil
}

// NewFactory returns a Factory building initialised controllers around the
// given collaborators.
func NewFactory(source LocationSource, validator NameValidator, options ...controller.Option) Factory {
	return func(ctx context.Context) (*controller.Controller, error) {
		return NewController(ctx, source, validator, options...)
	}
}

// LocalFactory keeps both collaborators in-process, backed by the mocked
// components.
func LocalFactory(loc *locations.Component, nm *names.Component, options ...controller.Option) (Factory, error) {
	if loc == nil || nm == nil {
		return nil, errors.New("entryform: locations and names components are required")
	}
	return NewFactory(loc.Source(), nm.Checker(), options...), nil
}

// RemoteFactory reaches both collaborators over HTTP through c.
func RemoteFactory(c *client.Client, options ...controller.Option) (Factory, error) {
	if c == nil {
		return nil, errors.New("entryform: client is required")
	}
	return NewFactory(c, c, options...), nil
}

// EmbeddedTemplates exposes the web surface templates so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return web.Templates()
}
