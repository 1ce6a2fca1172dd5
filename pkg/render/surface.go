package render

import (
	"context"

	"github.com/goliatone/go-entryform/pkg/controller"
)

// Factory builds an initialised controller. Surfaces that host several
// sessions (one per browser tab) call it once per session.
type Factory func(ctx context.Context) (*controller.Controller, error)

// Surface presents the entry form and forwards user input to a controller.
type Surface interface {
	Name() string
	Run(ctx context.Context, newController Factory) error
}
