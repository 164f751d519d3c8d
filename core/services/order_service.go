package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/repositories"
)

// ErrCartEmpty 空购物车无法结算
var ErrCartEmpty = errors.New("cart is empty")

// OrderService 订单用例
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	audit     repositories.AuditTrail
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	audit repositories.AuditTrail,
) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, audit: audit}
}

// Checkout 将用户购物车结算为已确认订单。
// 成功后清空购物车并写入审计记录。
func (s *OrderService) Checkout(ctx context.Context, userID string, address domain.ShippingAddress) (*domain.Order, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	order := domain.NewOrder(newEntityID(), userID)
	order.ShippingAddress = &address
	for _, item := range cart.Items {
		if err := order.AddItem(newEntityID(), item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if err := order.Confirm(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	// 结算成功后购物车整体替换为空
	cart.Items = nil
	cart.UpdatedAt = time.Now()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	// 审计失败不回滚订单
	_ = s.audit.Append(ctx, repositories.AuditRecord{
		UserID:  userID,
		Action:  "order.checkout",
		Subject: order.OrderID,
		Detail:  map[string]any{"total": order.TotalAmount(), "items": len(order.Items)},
		At:      time.Now(),
	})

	return order, nil
}

// GetOrder 获取订单
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// ListOrders 列出用户的全部订单
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}

// CancelOrder 取消订单并写入审计记录
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	_ = s.audit.Append(ctx, repositories.AuditRecord{
		UserID:  order.UserID,
		Action:  "order.cancel",
		Subject: order.OrderID,
		At:      time.Now(),
	})
	return order, nil
}

// newEntityID 生成 16 字节随机十六进制标识
func newEntityID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败说明运行环境已不可用
		panic(fmt.Sprintf("services: failed to generate id: %v", err))
	}
	return hex.EncodeToString(buf)
}
