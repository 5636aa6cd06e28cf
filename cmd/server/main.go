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

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"vidtube_backend/internal/app/di"
	"vidtube_backend/internal/platform/config"
	"vidtube_backend/internal/platform/db"
	"vidtube_backend/internal/platform/logger"
	infraredis "vidtube_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(db.ConfigFrom(cfg.Database), cfg.Database.ConnTimeout, cfg.Database.Migrate)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	mediaStore, err := di.NewMediaStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	tokens, err := di.NewTokenService(cfg.JWT, gdb)
	if err != nil {
		slog.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	app := di.NewApp(cfg, gdb, rdb, mediaStore, tokens)
	go app.Cleaner.RunWorker(ctx, cfg.Cascade.RetryInterval, cfg.Cascade.BatchSize)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
