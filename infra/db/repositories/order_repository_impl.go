package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gocrud/shop/core/domain"
	coredeps "github.com/gocrud/shop/core/repositories"
	"github.com/gocrud/shop/infra/db"
)

// OrderRepositoryImpl OrderRepository 的 GORM 实现
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepositoryImpl 创建订单仓储
func NewOrderRepositoryImpl(gdb *gorm.DB) *OrderRepositoryImpl {
	return &OrderRepositoryImpl{db: gdb}
}

// GetByID 根据订单 ID 获取订单
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var row db.OrderModel
	err := r.db.WithContext(ctx).First(&row, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coredeps.ErrNotFound
		}
		return nil, fmt.Errorf("order repository: query failed: %w", err)
	}

	var itemRows []db.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("order repository: item query failed: %w", err)
	}

	return toOrder(&row, itemRows), nil
}

// ListByUserID 列出用户的全部订单
func (r *OrderRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	var rows []db.OrderModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("order repository: query failed: %w", err)
	}

	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		var itemRows []db.OrderItemModel
		if err := r.db.WithContext(ctx).
			Where("order_id = ?", rows[i].OrderID).
			Order("id").
			Find(&itemRows).Error; err != nil {
			return nil, fmt.Errorf("order repository: item query failed: %w", err)
		}
		orders = append(orders, toOrder(&rows[i], itemRows))
	}
	return orders, nil
}

// Save 保存订单：订单头 upsert，项目整体替换
func (r *OrderRepositoryImpl) Save(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := db.OrderModel{
			OrderID:   order.OrderID,
			UserID:    order.UserID,
			Status:    string(order.Status),
			CreatedAt: order.CreatedAt,
		}
		if order.ShippingAddress != nil {
			row.Street = order.ShippingAddress.Street
			row.City = order.ShippingAddress.City
			row.PostalCode = order.ShippingAddress.PostalCode
			row.Country = order.ShippingAddress.Country
		}

		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("order repository: save failed: %w", err)
		}

		if err := tx.Where("order_id = ?", order.OrderID).Delete(&db.OrderItemModel{}).Error; err != nil {
			return fmt.Errorf("order repository: item delete failed: %w", err)
		}
		if len(order.Items) == 0 {
			return nil
		}

		itemRows := make([]db.OrderItemModel, 0, len(order.Items))
		for _, item := range order.Items {
			itemRows = append(itemRows, db.OrderItemModel{
				OrderID:   order.OrderID,
				ItemID:    item.ItemID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		if err := tx.Create(&itemRows).Error; err != nil {
			return fmt.Errorf("order repository: item insert failed: %w", err)
		}
		return nil
	})
}

// toOrder 将数据库模型转换为领域模型
func toOrder(row *db.OrderModel, itemRows []db.OrderItemModel) *domain.Order {
	order := &domain.Order{
		OrderID:   row.OrderID,
		UserID:    row.UserID,
		Status:    domain.OrderStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
	if row.Street != "" || row.City != "" || row.Country != "" {
		order.ShippingAddress = &domain.ShippingAddress{
			Street:     row.Street,
			City:       row.City,
			PostalCode: row.PostalCode,
			Country:    row.Country,
		}
	}
	for _, item := range itemRows {
		order.Items = append(order.Items, domain.OrderItem{
			ItemID:    item.ItemID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return order
}
