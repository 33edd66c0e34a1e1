package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowband/flowband/internal/api"
)

// defaultAddr is the listen address when neither flag nor config set one.
const defaultAddr = ":8080"

// serveCommand creates the serve command, which exposes the render
// pipeline as an HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render pipeline as an HTTP service",
		Long: `Serve starts an HTTP server exposing the render pipeline.

Endpoints:
  POST /v1/render   render a dataset (JSON body mirrors the CLI flags)
  GET  /healthz     liveness probe
  GET  /version     build information`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			if backend != "" {
				c.Config.Cache.Backend = backend
			}

			logger := loggerFromContext(cmd.Context())

			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, logger).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&backend, "cache", "", "fetch cache backend: file (default), redis, mongo, none")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dataset fetch cache")

	return cmd
}
