package app

import (
	"fmt"
	"time"

	"github.com/gocrud/shop/config"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Etcd     EtcdConfig     `yaml:"etcd"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            int `yaml:"port"`
	ShutdownSeconds int `yaml:"shutdown_seconds"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DatabaseConfig 数据库配置（SQLite）
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI            string `yaml:"uri"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// EtcdConfig 集中式配置源。Endpoints 为空时禁用。
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
	Key       string   `yaml:"key"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
}

// WorkerConfig 后台任务配置
type WorkerConfig struct {
	CleanupSpec   string `yaml:"cleanup_spec"`
	RetentionDays int    `yaml:"retention_days"`
}

// DefaultConfig 返回本地开发默认配置
func DefaultConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 8080, ShutdownSeconds: 30},
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{Path: "shop.db"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Mongo:    MongoConfig{URI: "mongodb://localhost:27017", TimeoutSeconds: 5},
		Worker:   WorkerConfig{CleanupSpec: "0 3 * * *", RetentionDays: 30},
	}
}

// LoadConfig 加载配置。
// 优先级从低到高：默认值 < YAML 文件 < etcd < 环境变量。
// etcd 的连接信息来自前两层，指定了 endpoints 时才追加该源。
func LoadConfig(path, envPrefix string) (Config, error) {
	cfg := DefaultConfig()

	base, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, true).
		AddEnvironment(envPrefix).
		Build()
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := base.Bind("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to bind configuration: %w", err)
	}

	if len(cfg.Etcd.Endpoints) == 0 {
		return cfg, nil
	}

	full, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, true).
		AddEtcd(config.EtcdSourceOptions{
			Endpoints:   cfg.Etcd.Endpoints,
			Key:         cfg.Etcd.Key,
			Username:    cfg.Etcd.Username,
			Password:    cfg.Etcd.Password,
			DialTimeout: 5 * time.Second,
			Optional:    true,
		}).
		AddEnvironment(envPrefix).
		Build()
	if err != nil {
		return cfg, fmt.Errorf("failed to load configuration with etcd: %w", err)
	}

	cfg = DefaultConfig()
	if err := full.Bind("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to bind configuration: %w", err)
	}
	return cfg, nil
}

// ShutdownTimeout 返回优雅关闭超时
func (c Config) ShutdownTimeout() time.Duration {
	if c.Server.ShutdownSeconds <= 0 {
		return DefaultShutdownTimeout
	}
	return time.Duration(c.Server.ShutdownSeconds) * time.Second
}

// MongoTimeout 返回 MongoDB 连接超时
func (c Config) MongoTimeout() time.Duration {
	if c.Mongo.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Mongo.TimeoutSeconds) * time.Second
}

// CartRetention 返回购物车保留期
func (c Config) CartRetention() time.Duration {
	if c.Worker.RetentionDays <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.Worker.RetentionDays) * 24 * time.Hour
}
