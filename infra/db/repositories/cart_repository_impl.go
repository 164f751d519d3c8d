// Package repositories 是核心仓储契约的 GORM 实现。
//
// 类型按命名约定（契约名 + "Impl"）被引导阶段的扫描器发现并绑定；
// 构造函数以 *gorm.DB 为原始资源参数，由调用方在每次解析时提供。
package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/infra/db"
)

// CartRepositoryImpl CartRepository 的 GORM 实现
type CartRepositoryImpl struct {
	db *gorm.DB
}

// NewCartRepositoryImpl 创建购物车仓储
func NewCartRepositoryImpl(gdb *gorm.DB) *CartRepositoryImpl {
	return &CartRepositoryImpl{db: gdb}
}

// GetByUserID 根据用户 ID 获取购物车，不存在时返回 (nil, nil)
func (r *CartRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var rows []db.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cart repository: query failed: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cart := &domain.Cart{UserID: userID, Items: make([]domain.CartItem, 0, len(rows))}
	for _, row := range rows {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		})
		if row.UpdatedAt.After(cart.UpdatedAt) {
			cart.UpdatedAt = row.UpdatedAt
		}
	}
	return cart, nil
}

// Save 保存购物车。
// 删除现有记录并整体重新插入，保证购物车内容与数据库完全一致。
func (r *CartRepositoryImpl) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", cart.UserID).Delete(&db.CartItemModel{}).Error; err != nil {
			return fmt.Errorf("cart repository: delete failed: %w", err)
		}

		if len(cart.Items) == 0 {
			return nil
		}

		updatedAt := cart.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now()
		}

		rows := make([]db.CartItemModel, 0, len(cart.Items))
		for _, item := range cart.Items {
			rows = append(rows, db.CartItemModel{
				UserID:    cart.UserID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				UpdatedAt: updatedAt,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("cart repository: insert failed: %w", err)
		}
		return nil
	})
}

// DeleteStale 删除在 olderThan 之前最后更新的购物车项目
func (r *CartRepositoryImpl) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("updated_at < ?", olderThan).
		Delete(&db.CartItemModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("cart repository: stale cleanup failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}
