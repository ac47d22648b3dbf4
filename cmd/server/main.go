package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hillcrest-academy/core/internal/app"
	"github.com/hillcrest-academy/core/internal/config"
	"github.com/hillcrest-academy/core/internal/database"
	redispkg "github.com/hillcrest-academy/core/internal/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	var log *zap.Logger
	if cfg.IsDev() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DSNValue(), cfg.IsDev())
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	rdb, err := redispkg.Connect(cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	a, err := app.New(cfg, db, rdb, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
