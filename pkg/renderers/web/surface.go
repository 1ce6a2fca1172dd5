// Package web serves the entry form as server-rendered HTML. Each browser
// session owns a controller; keystrokes reach it through small fetch calls and
// plain form posts work without scripts.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-entryform/pkg/render"
)

// Name is the registry key of the web surface.
const Name = "web"

// Surface runs the form handler on an HTTP server.
type Surface struct {
	options []Option
	ready   func(addr net.Addr)
}

var _ render.Surface = (*Surface)(nil)

// New constructs the surface.
func New(options ...Option) *Surface {
	return &Surface{options: options}
}

// OnReady registers a callback invoked with the bound address once the
// listener is open.
func (s *Surface) OnReady(fn func(addr net.Addr)) *Surface {
	s.ready = fn
	return s
}

func (s *Surface) Name() string { return Name }

// Run serves until ctx ends, then shuts the server down gracefully and closes
// every session.
func (s *Surface) Run(ctx context.Context, newController render.Factory) error {
	handler, err := NewHandler(newController, s.options...)
	if err != nil {
		return err
	}
	defer handler.Close()
	cfg := handler.cfg

	mux := http.NewServeMux()
	for _, mount := range cfg.mounts {
		if err := mount(mux); err != nil {
			return fmt.Errorf("web: mount routes: %w", err)
		}
	}
	root := cfg.basePath + "/"
	mux.Handle(root, handler)

	listener, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", cfg.addr, err)
	}
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	cfg.logger.Info("serving entry form", zap.String("addr", listener.Addr().String()), zap.String("path", root))
	if s.ready != nil {
		s.ready(listener.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		handler.sessions.Janitor(gctx, cfg.cleanupEvery)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		cfg.logger.Info("shutting down entry form server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
