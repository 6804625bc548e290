package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/internal/api"
	"github.com/matzehuels/sitelen/pkg/observability"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

type serveFlags struct {
	addr    string
	redis   string
	noCache bool
	timeout time.Duration
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse, layout and render API over HTTP",
		Long: `Serve the pipeline over HTTP.

Routes:
  POST /v1/parse           text to grammar trees
  POST /v1/layout          text to the selected arrangement per compound
  POST /v1/render          text to stored artifacts
  GET  /v1/artifacts/{id}  download a rendered artifact
  GET  /healthz            liveness and build information

Rendered artifacts are kept in the cache. Point several instances at the
same Redis to share results and downloads.`,
		Example: `  sitelen serve
  sitelen serve --addr 127.0.0.1:9000 --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "Redis URL for the shared cache (overrides the config file)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching (artifact downloads are unavailable)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", api.DefaultRequestTimeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	if flags.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", flags.timeout)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if flags.redis != "" {
		cfg.Cache.Redis = flags.redis
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if c.verbose {
		observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
	}

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           api.New(runner, c.Logger, api.WithRequestTimeout(flags.timeout)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", flags.addr, "cache", cacheKind(cfg, flags.noCache))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func cacheKind(cfg *fileConfig, noCache bool) string {
	switch {
	case noCache:
		return "none"
	case cfg.Cache.Redis != "":
		return "redis"
	default:
		return "file"
	}
}
