package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/lead-manager/cmd/mainconfig"
	"github.com/wolfman30/lead-manager/internal/api/router"
	"github.com/wolfman30/lead-manager/internal/app/bootstrap"
	appconfig "github.com/wolfman30/lead-manager/internal/config"
	httpmiddleware "github.com/wolfman30/lead-manager/internal/http/middleware"
	"github.com/wolfman30/lead-manager/internal/leads"
	"github.com/wolfman30/lead-manager/internal/observability/metrics"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		var cfgErr *appconfig.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Error("invalid configuration", "missing", cfgErr.Missing, "reason", cfgErr.Reason)
		} else {
			logger.Error("invalid configuration", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("starting lead-manager API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.LeadsBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, leadMetrics := setupMetrics()
	loadAWS := mainconfig.Loader(cfg)

	store, err := bootstrap.BuildLeadStore(ctx, cfg, loadAWS, logger)
	if err != nil {
		logger.Error("failed to build lead store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	notifier, err := bootstrap.BuildLeadNotifier(ctx, cfg, loadAWS, logger)
	if err != nil {
		logger.Error("failed to build lead notifier", "error", err)
		os.Exit(1)
	}

	workspace := setupWorkspace(ctx, store.Store, notifier, leadMetrics, logger)

	var limiter *httpmiddleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = httpmiddleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(workspace, logger.WithComponent("leads-api")),
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers lead metrics and the Go runtime collectors on a
// private registry and returns its exposition handler.
func setupMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewLeadMetrics(reg)
}

// setupWorkspace builds the working set and runs the initial load. A failed
// load is logged and the server starts with an empty list.
func setupWorkspace(ctx context.Context, store leads.Store, notifier leads.Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *leads.Workspace {
	adapter := leads.NewAdapter(store, m, logger.WithComponent("leads-adapter"))
	workspace := leads.NewWorkspace(adapter, notifier, m, logger.WithComponent("leads"))

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := workspace.Load(loadCtx); err != nil {
		logger.Error("initial lead load failed", "error", leads.UserMessage(err))
	}
	return workspace
}
