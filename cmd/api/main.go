// Package main is the entry point for the business site builder API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/pkordes/bizsite/internal/config"
	"github.com/pkordes/bizsite/internal/handler"
	"github.com/pkordes/bizsite/internal/logging"
	"github.com/pkordes/bizsite/internal/places"
	"github.com/pkordes/bizsite/internal/repo"
	"github.com/pkordes/bizsite/internal/service"
	"github.com/pkordes/bizsite/internal/site"
	"github.com/pkordes/bizsite/internal/tenant"
	"github.com/pkordes/bizsite/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env file is fine: production sets real environment variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// --- OpenAPI document -------------------------------------------------
	if _, err := spec.Load(context.Background()); err != nil {
		slog.Error("invalid OpenAPI document", "error", err)
		os.Exit(1)
	}

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Services ---------------------------------------------------------
	businessRepo := repo.NewBusinessRepo(pool)
	analyticsRepo := repo.NewAnalyticsRepo(pool)

	placesClient := places.New(places.Config{
		APIKey:    cfg.Places.APIKey,
		BaseURL:   cfg.Places.BaseURL,
		CacheSize: cfg.Places.CacheSize,
		CacheTTL:  cfg.Places.CacheTTL,
		Logger:    logger,
	})
	if !placesClient.Enabled() {
		slog.Warn("GOOGLE_PLACES_API_KEY not set; places proxy will answer 503")
	}
	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set; admin routes will answer 503")
	}

	renderer, err := site.NewRenderer(cfg.SiteURL, "/api/analytics/track")
	if err != nil {
		slog.Error("failed to parse site templates", "error", err)
		os.Exit(1)
	}

	srv := handler.NewServer(handler.Deps{
		Businesses: service.NewBusinessService(businessRepo, cfg.ReservedSubdomains...),
		Analytics:  service.NewAnalyticsService(businessRepo, analyticsRepo, logger),
		Places:     service.NewPlacesService(placesClient, businessRepo, logger),
		Sitemap:    service.NewSitemapService(businessRepo, cfg.SiteURL, logger),
		Site:       renderer,
		OpenAPI:    spec.OpenAPI,
		Logger:     logger,
	})

	// --- Router -----------------------------------------------------------
	router := handler.NewRouter(srv, handler.RouterConfig{
		Resolver:           tenant.NewResolver(cfg.RootDomain, cfg.ReservedSubdomains),
		CORSOrigins:        cfg.CORSOrigins,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AdminToken:         cfg.AdminToken,
		Logger:             logger,
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for the 10s places upstream timeout.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "root_domain", cfg.RootDomain)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
