package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wetrack/wetrack/internal/api"
	wmongo "github.com/wetrack/wetrack/internal/infrastructure/db/mongo"
	wredis "github.com/wetrack/wetrack/internal/infrastructure/db/redis"
	"github.com/wetrack/wetrack/internal/pkg/config"
	"github.com/wetrack/wetrack/pkg/logger"
)

// @title        WeTrack API
// @version      1.0
// @description  Location-sharing backend: users, sessions, friends, chats and location pings.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := wmongo.Connect(ctx, wmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	rdb, err := wredis.Connect(ctx, wredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := wmongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := wmongo.NewTokenRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := wmongo.NewChatRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return wmongo.NewLocationRepository(db).EnsureIndexes(ctx)
}
