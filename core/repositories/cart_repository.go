// Package repositories 声明核心层依赖的抽象能力（接口契约）。
//
// 实现位于 infra 层，按命名约定（接口名 + "Impl"）在引导阶段
// 被扫描绑定，核心层不感知任何具体实现。
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/gocrud/shop/core/domain"
)

// ErrNotFound 请求的实体不存在
var ErrNotFound = errors.New("entity not found")

// CartRepository 购物车仓储契约
type CartRepository interface {
	// GetByUserID 根据用户 ID 获取购物车，不存在时返回 (nil, nil)
	GetByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	// Save 保存购物车（整体替换）
	Save(ctx context.Context, cart *domain.Cart) error
	// DeleteStale 删除在 olderThan 之前最后更新的购物车，返回删除的用户数
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}
