package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamelist/backend/internal/auth"
	"gamelist/backend/internal/catalog"
	"gamelist/backend/internal/config"
	"gamelist/backend/internal/database"
	"gamelist/backend/internal/handler"
	"gamelist/backend/internal/logger"
	"gamelist/backend/internal/metrics"
	"gamelist/backend/internal/store"
)

const (
	shutdownTimeout        = 10 * time.Second
	limiterCleanupInterval = 5 * time.Minute
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.LoggerSettings())
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseSettings(), appLogger)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Error(fmt.Sprintf("failed to close database: %v", err))
		}
	}()

	m := metrics.New()
	catalogClient := catalog.New(catalog.Config{
		BaseURL:     cfg.CatalogURL,
		ClientID:    cfg.ClientID,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.CatalogTimeout,
	}, appLogger, m)

	h := handler.New(
		store.New(db, appLogger),
		catalogClient,
		auth.NewSessions(cfg.SessionSecret, cfg.SessionCookieSecure),
		appLogger,
		cfg.BcryptCost,
	)
	limiter := auth.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst, appLogger)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(limiterCleanupInterval, stopCleanup)
	router, err := handler.NewRouter(h, m, limiter, cfg.TrustedProxies)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("failed to build router: %v", err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.CatalogTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("Server is running on :%s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(fmt.Sprintf("server failed: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("server forced to shutdown: %v", err))
	}
	appLogger.Info("Server exited")
}
