package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/expertcalc/internal/adapters/http/api"
	"github.com/okian/expertcalc/internal/adapters/http/site"
	"github.com/okian/expertcalc/internal/adapters/http/swagger"
	"github.com/okian/expertcalc/pkg/logger"
	"github.com/okian/expertcalc/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// ServeCmd returns the command that runs the HTTP API.
func ServeCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation API over HTTP",
		Long: `Start the stateless HTTP API. Every request carries its own owned set;
the server keeps nothing between requests.

Routes: / (browser front-end), /healthz, /metrics, /stats, /experts, /experts/initial,
/stages/{tier}, /recommendations, /openapi.yaml and /api-docs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				g.cfg.Addr = addr
			}
			return g.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	return cmd
}

func (g *globals) serve(ctx context.Context) error {
	log := logger.Get()
	cfg := g.cfg

	svc, err := g.loadService(ctx)
	if err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	apiServer := api.NewServer(svc,
		api.WithLogger(logger.Named("api")),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithRateLimit(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowSeconds)*time.Second),
		api.WithMaxOwned(cfg.MaxOwnedPerRequest),
	)
	router := apiServer.Router(ctx)
	swagger.Register(ctx, router)
	site.Register(ctx, router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("dataset", cfg.DatasetPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes the runtime gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
