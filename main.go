package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorell/newsroom-be/internal/api"
	"github.com/jmorell/newsroom-be/internal/auth"
	"github.com/jmorell/newsroom-be/internal/config"
	"github.com/jmorell/newsroom-be/internal/database"
	"github.com/jmorell/newsroom-be/internal/logger"
	"github.com/jmorell/newsroom-be/internal/monitoring"
	"github.com/jmorell/newsroom-be/internal/services"
	"github.com/jmorell/newsroom-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up token manager
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Set up WebSocket Hub for the live article feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	articleService := services.NewArticleService(db)
	auditService := services.NewAuditService(db)

	// Set up and run the background audit retention job
	retention, err := monitoring.NewRetentionJob(auditService, cfg.RetentionCron, cfg.AuditRetention)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize retention job")
	}
	go retention.Run()

	// Set up router
	router := api.NewRouter(cfg, tokens, hub, userService, articleService, auditService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
