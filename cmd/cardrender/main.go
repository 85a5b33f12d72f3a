package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"cardrender/internal/config"
	"cardrender/internal/http/server"
	"cardrender/internal/infra/logging"
	"cardrender/internal/infra/postgres"
	"cardrender/internal/infra/ratelimit"
	"cardrender/internal/tokens"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rdb *redis.Client
	if cfg.Cache.RedisHost != "" && cfg.Cache.CardCacheEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisHost,
			DB:   cfg.Cache.CardCacheDB,
		})
		defer rdb.Close()
	}

	tokenCache := tokens.NewCache()
	reloader, closeRepo := newReloader(cfg, tokenCache)
	defer closeRepo()
	if err := reloader.LoadOnce(ctx); err != nil {
		logging.Error("Failed to load API tokens", "error", err)
	}
	reloader.Start(ctx)

	store := ratelimit.NewStore(ratelimit.RedisConfig{
		Addr: cfg.Cache.RedisHost,
		DB:   cfg.Cache.RateLimitDB,
	})
	app, err := server.New(server.Deps{
		Config: cfg,
		Redis:  rdb,
		Tokens: tokenCache,
		Store:  store,
	})
	if err != nil {
		logging.Error("Failed to set up server", "error", err)
		os.Exit(1)
	}

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
}

// newReloader wires the Postgres token repository when one is configured.
// The returned func releases the database handle.
func newReloader(cfg config.Config, cache *tokens.Cache) (*tokens.Reloader, func()) {
	var repo tokens.Repository
	closeRepo := func() {}
	if cfg.Auth.Postgres.Enabled() {
		dsn, err := postgres.DSN(cfg.Auth.Postgres)
		if err != nil {
			logging.Error("Invalid Postgres token store settings", "error", err)
		} else {
			db := postgres.NewDB()
			repo = postgres.NewTokenRepository(db, dsn)
			closeRepo = func() { _ = db.Close() }
		}
	}
	r := tokens.NewReloader(repo, cache, cfg.Auth.ReloadInterval).WithStatic(cfg.Auth.StaticTokens)
	return r, closeRepo
}

// startServer starts the Fiber app and blocks until SIGINT or SIGTERM.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint
	signal.Stop(sigint)

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}
