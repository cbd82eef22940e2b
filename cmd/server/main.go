// cmd/server/main.go
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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/assistant"
	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/database"
	"github.com/solarsavers/solarsavers-api/internal/database/memory"
	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/logger"
	"github.com/solarsavers/solarsavers-api/internal/metrics"
	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/router"
	"github.com/solarsavers/solarsavers-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer closeStore()

	responder, closeResponder := buildResponder(cfg)
	defer closeResponder()

	if cfg.Seed.OnStart {
		result, err := services.NewSeedService(store).Seed(context.Background())
		if err != nil {
			logrus.WithError(err).Fatal("Failed to seed database")
		}
		logrus.WithFields(logrus.Fields{
			"seeded":   result.Seeded,
			"products": result.ProductsCount,
		}).Info("Seed finished")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	notifications := services.NewNotificationService(cfg)

	// Initialize router
	r, err := router.Initialize(router.Dependencies{
		Store:         store,
		Config:        cfg,
		Notifications: notifications,
		Responder:     responder,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	// Let queued emails finish before the store closes.
	notifications.Wait()

	logrus.Info("Server exited")
}

func openStore(cfg *config.Config) (*repository.Store, func(), error) {
	if cfg.Database.Driver == "memory" {
		logrus.Warn("Using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}

	return database.NewStore(db), func() { database.Close(db) }, nil
}

// buildResponder prefers Gemini and falls back to canned replies when no
// key is configured or a call fails.
func buildResponder(cfg *config.Config) (assistant.Responder, func()) {
	fallback := assistant.KeywordResponder{}
	if cfg.AI.GeminiAPIKey == "" {
		logrus.Info("Gemini API key not set, chat uses keyword replies")
		return fallback, func() {}
	}

	gemini, err := assistant.NewGeminiResponder(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if err != nil {
		logrus.WithError(err).Warn("Gemini unavailable, chat uses keyword replies")
		return fallback, func() {}
	}

	responder := &assistant.FallbackResponder{
		Primary:  gemini,
		Fallback: fallback,
		Timeout:  time.Duration(cfg.AI.Timeout) * time.Second,
		OnFallback: func(error) {
			metrics.AssistantFallbacks.Inc()
		},
	}
	return responder, func() {
		if err := gemini.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Gemini client")
		}
	}
}
