// Package main is the entry point for the screener gateway. It wires
// dependencies together and starts the server; no business logic belongs
// here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/internal/handler"
	"github.com/myfriendben/screener/internal/rebate"
	"github.com/myfriendben/screener/internal/repo"
	"github.com/myfriendben/screener/internal/service"
	"github.com/myfriendben/screener/internal/session"
	"github.com/myfriendben/screener/migrations"
)

// rebateCacheEntries bounds the number of cached rebate lookups.
const rebateCacheEntries = 10_000

// memorySessions bounds the in-process session store.
const memorySessions = 100_000

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	tables, err := config.LoadTables(cfg.WhiteLabelsFile)
	if err != nil {
		slog.Error("failed to load routing tables", "error", err)
		os.Exit(1)
	}
	registry := tables.Registry()

	// --- Database ---------------------------------------------------------
	if cfg.MigrateOnStart {
		if err := migrate(context.Background(), cfg.DatabaseURL); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Sessions ---------------------------------------------------------
	var store session.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		slog.Info("session store: redis")
	} else {
		mem, err := session.NewMemoryStore(memorySessions, cfg.SessionTTL)
		if err != nil {
			slog.Error("failed to create session store", "error", err)
			os.Exit(1)
		}
		defer mem.Close()
		store = mem
		slog.Warn("session store: memory; sessions are lost on restart")
	}

	// --- Services ---------------------------------------------------------
	cache, err := rebate.NewCache(rebateCacheEntries, cfg.RebateCacheTTL)
	if err != nil {
		slog.Error("failed to create rebate cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	screens := service.NewScreenService(repo.NewScreenRepo(pool), registry)
	rebates := service.NewRebateService(
		rebate.NewClient(cfg.RebateAPIURL, cfg.RebateAPIKey, cfg.RebateTimeout),
		cache,
	)

	r := newRouter(routerDeps{
		cfg:      cfg,
		tables:   tables,
		registry: registry,
		api:      handler.NewServer(screens, rebates, registry, logger),
		screens:  screens,
		store:    store,
		log:      logger,
	})

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a rebate provider call at its own timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RebateTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "white_labels", len(registry.All()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending migration through a short-lived
// database/sql handle, which goose requires.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", len(results))
	return nil
}
