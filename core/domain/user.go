package domain

import (
	"errors"
	"time"
)

// ErrEmailRequired 用户必须有邮箱
var ErrEmailRequired = errors.New("email is required")

// User 用户（实体）
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser 创建用户
func NewUser(userID, email, name string) (*User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	return &User{
		UserID:    userID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}
