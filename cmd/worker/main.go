package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gocrud/shop/api"
	"github.com/gocrud/shop/app"
	"github.com/gocrud/shop/hosting"
	"github.com/gocrud/shop/infra/bootstrap"
	"github.com/gocrud/shop/infra/cache"
	"github.com/gocrud/shop/infra/db"
	"github.com/gocrud/shop/logging"
	"github.com/gocrud/shop/worker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := app.LoadConfig(configPath, "SHOP_")
	if err != nil {
		return err
	}

	logBuilder := logging.NewLoggingBuilder().
		SetMinimumLevel(parseLevel(cfg.Logging.Level))
	if cfg.Logging.JSON {
		logBuilder.UseJSON()
	}
	logger := logBuilder.Build("worker")

	gormDB, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	defer redisClient.Close()

	factory, _, err := bootstrap.NewFactory(logger)
	if err != nil {
		return err
	}

	// 清理任务不触达审计存储，Mongo 句柄留空
	resources := api.ResourceSet{DB: gormDB, Redis: redisClient}

	scheduler := worker.NewScheduler(logger)
	cleanup := worker.NewStaleCartCleanup(factory, resources.PerRequest, cfg.CartRetention(), logger)
	if err := scheduler.AddJob(cfg.Worker.CleanupSpec, "stale-cart-cleanup", cleanup); err != nil {
		return err
	}

	manager := hosting.NewManager(logger)
	manager.Add(scheduler)

	return app.Run(context.Background(), manager, logger, cfg.ShutdownTimeout())
}

func parseLevel(level string) logging.LogLevel {
	switch level {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
