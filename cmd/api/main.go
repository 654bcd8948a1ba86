package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/euroblaze/ear-backend/internal/adapters/primary/http"
	mw "github.com/euroblaze/ear-backend/internal/adapters/primary/http/middleware"
	"github.com/euroblaze/ear-backend/internal/adapters/secondary/github"
	"github.com/euroblaze/ear-backend/internal/adapters/secondary/odoo"
	"github.com/euroblaze/ear-backend/internal/config"
	"github.com/euroblaze/ear-backend/internal/core/services"
	"github.com/euroblaze/ear-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		AddSource:   cfg.IsDevelopment(),
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Connect the Ticket Backend
	ctx := context.Background()
	odooClient, err := odoo.NewClient(odoo.Config{
		URL:      cfg.Odoo.URL,
		DB:       cfg.Odoo.DB,
		Username: cfg.Odoo.User,
		Password: cfg.Odoo.Password,
	}, logger)
	if err != nil {
		logger.Error("failed to create ticket backend client", "error", err)
		os.Exit(1)
	}

	if err := odooClient.Authenticate(ctx); err != nil {
		logger.Error("ticket backend authentication failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ticket backend connection established",
		"url", cfg.Odoo.URL,
		"db", cfg.Odoo.DB,
		"uid", odooClient.CurrentUserID(),
	)

	// 4. Connect the Activity Source
	githubClient := github.NewClient(cfg.GitHub.Token)

	// 5. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rlCfg := mw.DefaultRateLimiterConfig()
		rlCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rlCfg.BurstSize = cfg.RateLimit.BurstSize
		rateLimiter = mw.NewRateLimiter(rlCfg)
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Services (Core)
	activityService := services.NewActivityService()
	ticketService := services.NewTicketService(odooClient, logger)
	queryService := services.NewQueryService(odooClient.CurrentUserID(), cfg.Odoo.User)

	// Lookup caches are a startup optimization, not a hard dependency;
	// enrichment falls back to defaults when they stay cold.
	if err := ticketService.WarmCaches(ctx); err != nil {
		logger.Warn("lookup cache warmup failed, enrichment will use defaults", "error", err)
	}

	// Handlers (Primary Adapters)
	searchHandler := httpAdapter.NewSearchHandler(queryService, odooClient, ticketService, errorHandler, logger)
	reportHandler := httpAdapter.NewReportHandler(githubClient, odooClient, activityService, ticketService, cfg.GitHub.Orgs, cfg.GitHub.DefaultPeriod, errorHandler, logger)
	healthHandler := httpAdapter.NewHealthHandler(odooClient, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	// Apply general rate limiting if enabled
	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Unregistered routes get the standard JSON error shape
	r.NotFound(errorHandler.NotFound)

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", searchHandler.RegisterRoutes)
		r.Route("/reports", reportHandler.RegisterRoutes)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
