package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"torresapp/internal/bot"
	"torresapp/internal/config"
	"torresapp/internal/dialog"
	httpx "torresapp/internal/infra/http"
	"torresapp/internal/infra/logger"
	"torresapp/internal/infra/storage"
	"torresapp/internal/infra/storage/postgres"
	"torresapp/internal/infra/storage/sqlite"
	"torresapp/internal/state"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	switch cfg.Storage.Backend {
	case "postgres":
		if err := runMigrations(cfg.Storage.PostgresDSN); err != nil {
			log.Error("migrations failed", "err", err)
			return
		}
		log.Info("migrations applied")
		store, err = postgres.New(ctx, cfg.Storage.PostgresDSN)
	default:
		store, err = sqlite.New(cfg.Storage.SQLitePath)
	}
	if err != nil {
		log.Error("storage init failed", "backend", cfg.Storage.Backend, "err", err)
		return
	}
	defer func() { _ = store.Close() }()
	log.Info("storage ready", "backend", cfg.Storage.Backend)

	app := state.New(store, log)
	app.Hydrate(ctx)
	if n, err := app.SeedDefaults(ctx); err != nil {
		log.Error("seeding failed", "err", err)
		return
	} else if n > 0 {
		log.Info("seeded default materials", "count", n)
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	tb := bot.New(api, log, app, dialog.NewRepo(), cfg.Telegram.OwnerChatID)
	go func() {
		if err := tb.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started", "account", api.Self.UserName)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
