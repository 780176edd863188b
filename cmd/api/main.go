package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	"github.com/Siddarth2230/base62/internal/config"
	"github.com/Siddarth2230/base62/internal/handler"
	"github.com/Siddarth2230/base62/internal/repository"
	"github.com/Siddarth2230/base62/internal/service"
	"github.com/Siddarth2230/base62/pkg/cache"
	"github.com/Siddarth2230/base62/pkg/idgen"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := service.Options{CacheSize: cfg.CacheSize, Logger: logger}

	// Redis backs the shared decode cache and the counter generator.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			_ = client.Close()
		}()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, running without it", "addr", cfg.RedisAddr, "err", err)
		} else {
			redisClient = client
			opts.L2 = cache.NewRedisCache(client, cfg.CacheTTL)
		}
	}

	// Postgres holds the ledger of issued codes.
	if cfg.DBDSN != "" {
		db, err := sql.Open("postgres", cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewIDRepository(db, logger)
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("postgres unavailable, ledger disabled", "err", err)
		} else if err := repo.EnsureSchema(ctx); err != nil {
			return err
		} else {
			opts.Ledger = repo
		}
	}

	gen, err := newGenerator(cfg, redisClient)
	if err != nil {
		return err
	}
	opts.Generator = gen

	svc, err := service.NewCodecService(opts)
	if err != nil {
		return err
	}
	h := handler.NewCodecHandler(svc, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "generator", gen.Name(),
			"ledger", opts.Ledger != nil, "l2", opts.L2 != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newGenerator(cfg config.Config, redisClient *redis.Client) (idgen.Generator, error) {
	if cfg.Generator == "counter" {
		if redisClient == nil {
			return nil, errors.New("counter generator requires REDIS_ADDR")
		}
		return idgen.NewCounterGenerator(redisClient, cfg.CounterKey), nil
	}
	return idgen.NewSnowflakeGenerator(cfg.NodeID, 0)
}
