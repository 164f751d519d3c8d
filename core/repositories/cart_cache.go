package repositories

import (
	"context"

	"github.com/gocrud/shop/core/domain"
)

// CartCache 购物车快照缓存契约。
// 缓存未命中不是错误：Get 返回 (nil, nil)。
type CartCache interface {
	// Get 读取缓存的购物车快照
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Put 写入购物车快照
	Put(ctx context.Context, cart *domain.Cart) error
	// Invalidate 使用户的快照失效
	Invalidate(ctx context.Context, userID string) error
}
