package services

import (
	"context"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/repositories"
)

// UserService 用户用例
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser 获取用户，不存在时返回 repositories.ErrNotFound
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Register 注册新用户
func (s *UserService) Register(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := domain.NewUser(newEntityID(), email, name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
