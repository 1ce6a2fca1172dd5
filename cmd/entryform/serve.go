package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-entryform/pkg/renderers/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form together with the mocked API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			ctx := cmd.Context()

			m, err := a.mocks()
			if err != nil {
				return err
			}
			factory, err := a.factory(m)
			if err != nil {
				return err
			}

			surface := web.New(a.webOptions(web.WithMount(func(mux web.Mux) error {
				return m.mount(ctx, mux, a.logger)
			}))...)
			return surface.Run(ctx, factory)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http.addr)")
	return cmd
}

func newMockAPICmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Serve only the mocked location and name validation API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			m, err := a.mocks()
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			if err := m.mount(cmd.Context(), mux, a.logger); err != nil {
				return err
			}
			return serveHTTP(cmd.Context(), addr, mux, a.logger, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http.addr)")
	return cmd
}

// serveHTTP serves handler on addr until ctx ends, then shuts down.
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger, ready func(net.Addr)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serving mock api", zap.String("addr", listener.Addr().String()))
	if ready != nil {
		ready(listener.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
