package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"surveydash/internal/analytics"
	"surveydash/internal/app"
	"surveydash/internal/config"
	"surveydash/internal/metrics"
	"surveydash/internal/service"
	"surveydash/internal/transport/rest"
	"surveydash/internal/transport/rest/middleware"
)

// @title Survey Dashboard API
// @version 1.0
// @description Survey responses, per-question analytics and chart data
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logOptions := &slog.HandlerOptions{}
	if cfg.Debug {
		logOptions.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, logOptions)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close(context.Background())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	registry := analytics.NewRegistry()

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	surveySvc := service.NewSurveyService(stores.SurveyRepo, stores.ResponseRepo, stores.ReportCache, registry,
		cfg.SurveyPageSize, cfg.RecentSurveys)
	responseSvc := service.NewResponseService(stores.SurveyRepo, stores.ResponseRepo, stores.ReportCache, registry,
		m, cfg.ResponsePageSize)
	reportSvc := service.NewReportService(stores.SurveyRepo, stores.ResponseRepo, stores.ReportCache, registry, m)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Error("invalid trusted proxies", "error", err)
		os.Exit(1)
	}
	limiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitBurst, proxies...)
	go limiter.RunCleanup(ctx, time.Hour)

	// Create router with container
	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		SurveyService:   surveySvc,
		ResponseService: responseSvc,
		ReportService:   reportSvc,
		Metrics:         m,
		Gatherer:        reg,
		SubmitLimiter:   limiter,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.HTTPPort,
			"store", cfg.Store,
			"redis", cfg.RedisAddr != "",
			"question_kinds", registry.Kinds())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}
