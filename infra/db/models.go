// Package db 提供基于 GORM 的数据库会话与持久化模型。
package db

import (
	"time"
)

// CartItemModel 购物车项目表
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"index;not null"`
	ProductID string    `gorm:"index;not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName 表名
func (CartItemModel) TableName() string { return "cart_items" }

// UserModel 用户表
type UserModel struct {
	UserID    string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Name      string
	CreatedAt time.Time
}

// TableName 表名
func (UserModel) TableName() string { return "users" }

// OrderModel 订单表
type OrderModel struct {
	OrderID    string `gorm:"primaryKey"`
	UserID     string `gorm:"index;not null"`
	Status     string `gorm:"not null"`
	Street     string
	City       string
	PostalCode string
	Country    string
	CreatedAt  time.Time
}

// TableName 表名
func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单项目表
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"index;not null"`
	ItemID    string `gorm:"not null"`
	ProductID string `gorm:"not null"`
	Quantity  int    `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
}

// TableName 表名
func (OrderItemModel) TableName() string { return "order_items" }

// allModels AutoMigrate 的模型清单
func allModels() []any {
	return []any{
		&CartItemModel{},
		&UserModel{},
		&OrderModel{},
		&OrderItemModel{},
	}
}
