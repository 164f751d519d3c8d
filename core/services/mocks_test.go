package services_test

import (
	"context"
	"time"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/repositories"
)

// ---------------- 内存实现 ----------------

type memCartRepo struct {
	carts map[string]*domain.Cart
	saves int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *memCartRepo) GetByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (r *memCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = &copied
	r.saves++
	return nil
}

func (r *memCartRepo) DeleteStale(_ context.Context, olderThan time.Time) (int64, error) {
	var removed int64
	for userID, cart := range r.carts {
		if cart.UpdatedAt.Before(olderThan) {
			delete(r.carts, userID)
			removed++
		}
	}
	return removed, nil
}

type memCartCache struct {
	snapshots   map[string]*domain.Cart
	hits        int
	puts        int
	invalidated []string
}

func newMemCartCache() *memCartCache {
	return &memCartCache{snapshots: make(map[string]*domain.Cart)}
}

func (c *memCartCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	cart, ok := c.snapshots[userID]
	if !ok {
		return nil, nil
	}
	c.hits++
	return cart, nil
}

func (c *memCartCache) Put(_ context.Context, cart *domain.Cart) error {
	c.snapshots[cart.UserID] = cart
	c.puts++
	return nil
}

func (c *memCartCache) Invalidate(_ context.Context, userID string) error {
	delete(c.snapshots, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) Save(_ context.Context, user *domain.User) error {
	r.users[user.UserID] = user
	return nil
}

type memOrderRepo struct {
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return order, nil
}

func (r *memOrderRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *domain.Order) error {
	r.orders[order.OrderID] = order
	return nil
}

type memAudit struct {
	records []repositories.AuditRecord
	failing bool
}

func (a *memAudit) Append(_ context.Context, record repositories.AuditRecord) error {
	if a.failing {
		return context.DeadlineExceeded
	}
	a.records = append(a.records, record)
	return nil
}

func (a *memAudit) ListByUserID(_ context.Context, userID string, limit int) ([]repositories.AuditRecord, error) {
	var out []repositories.AuditRecord
	for _, record := range a.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
