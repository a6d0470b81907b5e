package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mailer"
	"portfolio-backend/pkg/redis"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup rate limiter (Redis when configured, in-memory otherwise)
	policy := ratelimit.Policy{
		Limit:  cfg.RateLimitMaxRequests,
		Window: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
	}
	var limiter ratelimit.Limiter
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Error("Redis unavailable, falling back to in-memory rate limiting", "error", err)
		}
	}
	if client := redis.Client(); client != nil {
		limiter = ratelimit.NewRedisLimiter(client, policy)
		logger.Log.Info("Rate limiting via shared Redis counters", "limit", policy.Limit, "window", policy.Window.String())
	} else {
		limiter = ratelimit.NewMemoryLimiter(policy)
		logger.Log.Warn("Rate limiting via in-memory fallback (per-instance quota only)", "limit", policy.Limit, "window", policy.Window.String())
	}
	defer redis.Close()

	// 4. Setup email service
	mailService := mailer.NewService(cfg)
	if !mailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - contact form will return 503")
	}

	// 5. Setup usecases
	contactUC := usecase.NewContactUsecase(mailService)

	// 6. Setup router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Limiter:   limiter,
		Config:    cfg,
	})

	// 7. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
