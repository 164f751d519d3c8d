package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gocrud/shop/core/domain"
	coredeps "github.com/gocrud/shop/core/repositories"
	"github.com/gocrud/shop/infra/db"
)

// UserRepositoryImpl UserRepository 的 GORM 实现
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepositoryImpl 创建用户仓储
func NewUserRepositoryImpl(gdb *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: gdb}
}

// GetByID 根据 ID 获取用户
func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var row db.UserModel
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coredeps.ErrNotFound
		}
		return nil, fmt.Errorf("user repository: query failed: %w", err)
	}

	return &domain.User{
		UserID:    row.UserID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Save 保存用户（upsert）
func (r *UserRepositoryImpl) Save(ctx context.Context, user *domain.User) error {
	row := db.UserModel{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("user repository: save failed: %w", err)
	}
	return nil
}
