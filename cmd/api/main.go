package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenciapet/petpal-manager/internal/api"
	"github.com/agenciapet/petpal-manager/internal/core/token"
	mongodb "github.com/agenciapet/petpal-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/agenciapet/petpal-manager/internal/infrastructure/db/redis"
	"github.com/agenciapet/petpal-manager/internal/infrastructure/notify"
	"github.com/agenciapet/petpal-manager/internal/infrastructure/queue"
	"github.com/agenciapet/petpal-manager/internal/pkg/config"
	"github.com/agenciapet/petpal-manager/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Unrecoverable faults are fatal at startup, never per-request.
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() {
		_ = rdb.Close()
	}()

	codec := token.New(cfg.JWTSecret, cfg.TokenTTL)

	hasher := queue.NewHashPool(cfg.HashWorkers, cfg.BcryptCost, log)
	hasher.Start(ctx)

	notifier := notify.NewLogNotifier(log)

	e := api.NewRouter(db, rdb, codec, hasher, notifier, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
