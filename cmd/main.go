// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wellnesshub/booking/internal/auth"
	"github.com/wellnesshub/booking/internal/config"
	"github.com/wellnesshub/booking/internal/database"
	"github.com/wellnesshub/booking/internal/handler"
	"github.com/wellnesshub/booking/internal/repository"
	"github.com/wellnesshub/booking/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	cfg := config.Load()

	// ── 1. Connect to PostgreSQL and bootstrap the schema ────────────────
	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if cfg.SeedDemoData {
		if err := database.Seed(ctx, pool); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
	}
	logger.Info("connected to postgres", zap.String("db", cfg.DBName))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	facilitatorRepo := repository.NewFacilitatorRepository(pool)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	validate := validator.New()

	authSvc := service.NewAuthService(userRepo, tokens)
	eventSvc := service.NewEventService(eventRepo)
	bookingSvc := service.NewBookingService(bookingRepo)
	facilitatorSvc := service.NewFacilitatorService(facilitatorRepo, eventRepo, bookingRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Logger:         logger,
		Tokens:         tokens,
		CRMBearerToken: cfg.CRMBearerToken,
		Auth:           handler.NewAuthHandler(authSvc, validate),
		Events:         handler.NewEventHandler(eventSvc),
		Bookings:       handler.NewBookingHandler(bookingSvc, validate),
		Facilitator:    handler.NewFacilitatorHandler(facilitatorSvc, validate),
	})

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
