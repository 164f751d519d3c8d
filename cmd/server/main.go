package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gocrud/shop/api"
	"github.com/gocrud/shop/app"
	"github.com/gocrud/shop/hosting"
	"github.com/gocrud/shop/infra/audit"
	"github.com/gocrud/shop/infra/bootstrap"
	"github.com/gocrud/shop/infra/cache"
	"github.com/gocrud/shop/infra/db"
	"github.com/gocrud/shop/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
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
	logger := logBuilder.Build("server")

	// 进程级共享句柄：连接池全局一份，请求作用域在资源映射中派生
	gormDB, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	defer redisClient.Close()

	mongoClient, err := audit.NewClient(cfg.Mongo.URI, cfg.MongoTimeout())
	if err != nil {
		return fmt.Errorf("failed to connect mongodb: %w", err)
	}
	defer mongoClient.Disconnect(context.Background())

	factory, _, err := bootstrap.NewFactory(logger)
	if err != nil {
		return err
	}

	resources := api.ResourceSet{DB: gormDB, Redis: redisClient, Mongo: mongoClient}

	server := api.NewBuilder(logger).
		UsePort(cfg.Server.Port).
		AddControllers(
			api.NewCartController(factory, resources),
			api.NewUserController(factory, resources),
			api.NewOrderController(factory, resources),
		).
		Build()

	manager := hosting.NewManager(logger)
	manager.Add(server)

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
