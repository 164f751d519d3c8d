// Package services 实现核心业务用例。
//
// Service 通过构造函数声明依赖（只依赖 repositories 包的抽象能力），
// 由 wiring.Factory 在每个请求开始时装配，构造后即为只读。
package services

import (
	"context"
	"time"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/repositories"
)

// CartService 购物车用例
type CartService struct {
	cartRepo repositories.CartRepository
	cache    repositories.CartCache
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repositories.CartRepository, cache repositories.CartCache) *CartService {
	return &CartService{cartRepo: cartRepo, cache: cache}
}

// GetCart 获取用户的购物车，不存在时返回空购物车。
// 优先读缓存快照，未命中回源并回填。
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if cached, err := s.cache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return domain.NewCart(userID), nil
	}

	// 回填失败不影响读取结果
	_ = s.cache.Put(ctx, cart)
	return cart, nil
}

// AddItem 添加商品到用户的购物车并持久化
func (s *CartService) AddItem(ctx context.Context, userID, productID string, unitPrice int64, quantity int) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.NewCart(userID)
	}

	if err := cart.AddItem(productID, unitPrice, quantity); err != nil {
		return nil, err
	}
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, userID)
	return cart, nil
}

// RemoveItem 从购物车移除商品
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return domain.NewCart(userID), nil
	}

	if cart.RemoveItem(productID) {
		cart.UpdatedAt = time.Now()
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
		_ = s.cache.Invalidate(ctx, userID)
	}
	return cart, nil
}

// PurgeStale 删除超过保留期未更新的购物车，返回清理的用户数。
// 由后台 worker 周期调用。
func (s *CartService) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	return s.cartRepo.DeleteStale(ctx, time.Now().Add(-retention))
}
