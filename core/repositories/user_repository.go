package repositories

import (
	"context"

	"github.com/gocrud/shop/core/domain"
)

// UserRepository 用户仓储契约
type UserRepository interface {
	// GetByID 根据 ID 获取用户，不存在时返回 ErrNotFound
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	// Save 保存用户
	Save(ctx context.Context, user *domain.User) error
}
