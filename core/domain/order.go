package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var (
	// ErrOrderNotPending 只能修改或确认待处理的订单
	ErrOrderNotPending = errors.New("order is not pending")
	// ErrOrderEmpty 订单必须包含至少一个项目
	ErrOrderEmpty = errors.New("order must contain at least one item")
	// ErrOrderNoAddress 订单必须有配送地址
	ErrOrderNoAddress = errors.New("order must have a shipping address")
	// ErrOrderNotCancellable 已送达或已取消的订单无法取消
	ErrOrderNotCancellable = errors.New("delivered or cancelled order cannot be cancelled")
)

// OrderItem 订单项目（实体）
type OrderItem struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// ShippingAddress 配送地址（值对象）
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order 订单（聚合根）
type Order struct {
	OrderID         string           `json:"order_id"`
	UserID          string           `json:"user_id"`
	Items           []OrderItem      `json:"items"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	Status          OrderStatus      `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewOrder 创建待处理订单
func NewOrder(orderID, userID string) *Order {
	return &Order{
		OrderID:   orderID,
		UserID:    userID,
		Status:    OrderStatusPending,
		CreatedAt: time.Now(),
	}
}

// AddItem 添加项目到订单
func (o *Order) AddItem(itemID, productID string, quantity int, unitPrice int64) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}
	if o.Status != OrderStatusPending {
		return ErrOrderNotPending
	}
	for _, item := range o.Items {
		if item.ItemID == itemID {
			return fmt.Errorf("order item '%s' already exists", itemID)
		}
	}

	o.Items = append(o.Items, OrderItem{
		ItemID:    itemID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return nil
}

// Confirm 确认订单
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotPending
	}
	if len(o.Items) == 0 {
		return ErrOrderEmpty
	}
	if o.ShippingAddress == nil {
		return ErrOrderNoAddress
	}

	o.Status = OrderStatusConfirmed
	return nil
}

// Cancel 取消订单
func (o *Order) Cancel() error {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return ErrOrderNotCancellable
	}
	o.Status = OrderStatusCancelled
	return nil
}

// TotalAmount 计算订单总金额
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}
