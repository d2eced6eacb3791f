package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/ui/templates"
)

const (
	renderTimeout   = 10 * time.Second
	datasetTimeout  = 30 * time.Second
	dashboardMaxAge = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", dashboardMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"csv_file", cfg.Dataset.CSVFile,
	)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics("sales_dashboard", registry)

	loader := dataset.NewLoader(logger, metrics)
	cache := dataset.NewCache(loader)

	// Fail fast on an unreadable or malformed dataset; later requests
	// hit the cache until the file changes on disk.
	ctx, cancel := context.WithTimeout(context.Background(), datasetTimeout)
	defer cancel()

	ds, err := cache.Load(ctx, cfg.Dataset.CSVFile)
	if err != nil {
		logger.Error("failed to load sales dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("sales dataset ready", "rows", len(ds.Sales), "dropped", ds.Dropped)

	apiHandlers := handlers.NewAPIHandlers(cfg.Dataset.CSVFile, cache, logger, metrics)
	sseHandlers := handlers.NewSSEHandlers(cfg.Dataset.CSVFile, cache, logger)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	srv := server.NewServer(apiHandlers, sseHandlers, templateHandlers, metricsHandler, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.Metrics(metrics),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		cache.Invalidate(cfg.Dataset.CSVFile)
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
