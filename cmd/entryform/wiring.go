package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-entryform"
	"github.com/goliatone/go-entryform/components/locations"
	"github.com/goliatone/go-entryform/components/names"
	"github.com/goliatone/go-entryform/pkg/apidoc"
	"github.com/goliatone/go-entryform/pkg/client"
	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/render"
	"github.com/goliatone/go-entryform/pkg/renderers/web"
)

// mocks bundles the in-process collaborators.
type mocks struct {
	locations *locations.Component
	names     *names.Component
}

func (a *app) mocks() (*mocks, error) {
	locFns := []locations.OptionFn{locations.WithLatency(a.cfg.Mock.Latency)}
	if len(a.cfg.Mock.Locations) > 0 {
		locFns = append(locFns, locations.WithLocations(a.cfg.Mock.Locations))
	}

	nameFns := []names.OptionFn{
		names.WithLatency(a.cfg.Mock.Latency),
		names.WithRateLimit(a.cfg.Mock.RateLimit.RPS, a.cfg.Mock.RateLimit.Burst),
	}
	if len(a.cfg.Mock.TakenNames) > 0 {
		nameFns = append(nameFns, names.WithTakenNames(a.cfg.Mock.TakenNames))
	}
	nm, err := names.New(nameFns...)
	if err != nil {
		return nil, err
	}
	return &mocks{locations: locations.New(locFns...), names: nm}, nil
}

// mount registers the mocked API and its OpenAPI description on mux.
func (m *mocks) mount(ctx context.Context, mux web.Mux, logger *zap.Logger) error {
	locPath, err := m.locations.RegisterRoutes(mux, "/")
	if err != nil {
		return err
	}
	namePath, err := m.names.RegisterRoutes(mux, "/")
	if err != nil {
		return err
	}
	doc, err := apidoc.Handler(ctx)
	if err != nil {
		return err
	}
	mux.Handle("/openapi.json", doc)
	logger.Info("mock api mounted",
		zap.String("locations", locPath),
		zap.String("names", namePath),
		zap.String("openapi", "/openapi.json"))
	return nil
}

// collaborators returns the location source and name validator selected by
// the configuration. m, when set, is reused instead of building fresh mocks.
func (a *app) collaborators(m *mocks) (controller.LocationSource, controller.NameValidator, error) {
	if a.cfg.Remote() {
		c, err := client.New(a.cfg.API.URL, client.WithTimeout(a.cfg.API.Timeout))
		if err != nil {
			return nil, nil, fmt.Errorf("api client: %w", err)
		}
		a.logger.Debug("using remote collaborators", zap.String("url", a.cfg.API.URL))
		return c, c, nil
	}

	if m == nil {
		var err error
		if m, err = a.mocks(); err != nil {
			return nil, nil, err
		}
	}
	return m.locations.Source(), m.names.Checker(), nil
}

func (a *app) factory(m *mocks) (render.Factory, error) {
	source, validator, err := a.collaborators(m)
	if err != nil {
		return nil, err
	}
	return entryform.NewFactory(source, validator, a.controllerOptions()...), nil
}

func (a *app) controllerOptions() []controller.Option {
	return []controller.Option{
		controller.WithLogger(a.logger.Named("controller")),
		controller.WithDebounce(a.cfg.Debounce),
		controller.WithValidationTimeout(a.cfg.ValidationTimeout),
	}
}

func (a *app) webOptions(extra ...web.Option) []web.Option {
	manifest := web.DefaultManifest()
	for key, value := range a.cfg.Theme.Tokens {
		manifest.Tokens[key] = value
	}
	opts := []web.Option{
		web.WithAddr(a.cfg.HTTP.Addr),
		web.WithSessionTTL(a.cfg.HTTP.SessionTTL),
		web.WithRefreshDelay(a.cfg.Debounce + a.cfg.Debounce/5),
		web.WithLogger(a.logger.Named("web")),
		web.WithThemeSelector(web.NewManifestSelector(manifest), a.cfg.Theme.Name, a.cfg.Theme.Variant),
	}
	return append(opts, extra...)
}
