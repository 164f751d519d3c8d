package domain

import (
	"errors"
	"time"
)

// ErrQuantityNotPositive 商品数量必须为正数
var ErrQuantityNotPositive = errors.New("quantity must be positive")

// CartItem 购物车项目（值对象）
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // 最小货币单位，如分
}

// Cart 购物车（聚合根）
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID}
}

// AddItem 添加商品到购物车。
// 已存在的商品合并数量，保持项目不可变（替换而非原地修改）。
func (c *Cart) AddItem(productID string, unitPrice int64, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}

	updated := make([]CartItem, 0, len(c.Items)+1)
	found := false
	for _, item := range c.Items {
		if item.ProductID == productID {
			updated = append(updated, CartItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity + quantity,
				UnitPrice: item.UnitPrice,
			})
			found = true
			continue
		}
		updated = append(updated, item)
	}

	if !found {
		updated = append(updated, CartItem{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	c.Items = updated
	return nil
}

// RemoveItem 从购物车移除商品，返回是否确实移除了项目
func (c *Cart) RemoveItem(productID string) bool {
	updated := make([]CartItem, 0, len(c.Items))
	removed := false
	for _, item := range c.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		updated = append(updated, item)
	}
	c.Items = updated
	return removed
}

// TotalAmount 计算购物车总金额
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
