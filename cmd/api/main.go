package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wearloop/rental-system/internal/api"
	"github.com/wearloop/rental-system/internal/core/service"
	"github.com/wearloop/rental-system/internal/infrastructure/config"
	mongodb "github.com/wearloop/rental-system/internal/infrastructure/db/mongo"
	redisdb "github.com/wearloop/rental-system/internal/infrastructure/db/redis"
	"github.com/wearloop/rental-system/internal/infrastructure/notify"
	"github.com/wearloop/rental-system/internal/infrastructure/queue"
	"github.com/wearloop/rental-system/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	listingRepo := mongodb.NewListingRepository(db)
	rentalRepo := mongodb.NewRentalRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	// --- Notification pipeline ---
	notifications := service.NewNotificationService(redisdb.NewNotificationDedup(rdb), log)
	notifications.AddSink("log", notify.NewLogNotifier(log))
	if cfg.SendGrid.APIKey != "" {
		notifications.AddSink("email", notify.NewEmailNotifier(
			authRepo, cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName))
	}

	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notifications, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, tokenTTL)
	rentalService := service.NewRentalService(
		listingRepo, listingRepo, rentalRepo, dispatcher, cfg.LockTimeout, log)
	listingService := service.NewListingService(listingRepo, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Auth:      authService,
		Rentals:   rentalService,
		Listings:  listingService,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
