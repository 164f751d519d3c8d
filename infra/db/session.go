package db

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SessionOptions 数据库会话配置选项
type SessionOptions struct {
	Dialector       gorm.Dialector // GORM 驱动 (如 sqlite.Open(path))
	AutoMigrate     bool           // 启动时自动迁移表结构
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions(dialector gorm.Dialector) *SessionOptions {
	return &SessionOptions{
		Dialector:       dialector,
		AutoMigrate:     true,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}

// Validate 验证配置
func (o *SessionOptions) Validate() error {
	if o.Dialector == nil {
		return fmt.Errorf("database dialector is required")
	}
	return nil
}

// Open 打开数据库句柄并按需迁移表结构。
// 返回的 *gorm.DB 是进程级共享的连接池句柄，
// 每个请求通过 WithContext 派生请求作用域会话。
func Open(opts *SessionOptions) (*gorm.DB, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("db: invalid session options: %w", err)
	}

	gdb, err := gorm.Open(opts.Dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db: failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if opts.AutoMigrate {
		if err := gdb.AutoMigrate(allModels()...); err != nil {
			return nil, fmt.Errorf("db: auto migration failed: %w", err)
		}
	}

	return gdb, nil
}

// OpenSQLite 打开 SQLite 数据库（默认驱动，也用于测试）
func OpenSQLite(path string) (*gorm.DB, error) {
	return Open(NewDefaultOptions(sqlite.Open(path)))
}

// OpenMemory 打开进程内 SQLite 数据库，用于测试。
// 内存库随连接销毁，连接池必须收敛到单个连接。
func OpenMemory() (*gorm.DB, error) {
	opts := NewDefaultOptions(sqlite.Open(":memory:"))
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	return Open(opts)
}
