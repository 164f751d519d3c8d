package repositories

import (
	"context"

	"github.com/gocrud/shop/core/domain"
)

// OrderRepository 订单仓储契约
type OrderRepository interface {
	// GetByID 根据订单 ID 获取订单，不存在时返回 ErrNotFound
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListByUserID 列出用户的全部订单
	ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	// Save 保存订单
	Save(ctx context.Context, order *domain.Order) error
}
