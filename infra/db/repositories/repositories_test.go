package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gocrud/shop/core/domain"
	coredeps "github.com/gocrud/shop/core/repositories"
	"github.com/gocrud/shop/infra/db"
	"github.com/gocrud/shop/infra/db/repositories"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	return gdb
}

// ---------------- CartRepository ----------------

func TestCartRepositoryRoundTrip(t *testing.T) {
	repo := repositories.NewCartRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	// 不存在的购物车返回 (nil, nil)
	cart, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cart)

	saved := domain.NewCart("u1")
	require.NoError(t, saved.AddItem("p1", 500, 2))
	require.NoError(t, saved.AddItem("p2", 300, 1))
	saved.UpdatedAt = time.Now()
	require.NoError(t, repo.Save(ctx, saved))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 2)
	assert.EqualValues(t, 1300, got.TotalAmount())
}

func TestCartRepositorySaveReplacesWholeCart(t *testing.T) {
	repo := repositories.NewCartRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	cart := domain.NewCart("u1")
	require.NoError(t, cart.AddItem("p1", 500, 2))
	require.NoError(t, repo.Save(ctx, cart))

	// 整体替换：p1 消失，只剩 p2
	replacement := domain.NewCart("u1")
	require.NoError(t, replacement.AddItem("p2", 300, 1))
	require.NoError(t, repo.Save(ctx, replacement))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].ProductID)

	// 保存空购物车等价于删除
	require.NoError(t, repo.Save(ctx, domain.NewCart("u1")))
	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCartRepositoryDeleteStale(t *testing.T) {
	repo := repositories.NewCartRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	stale := domain.NewCart("old")
	require.NoError(t, stale.AddItem("p1", 100, 1))
	stale.UpdatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Save(ctx, stale))

	fresh := domain.NewCart("new")
	require.NoError(t, fresh.AddItem("p1", 100, 1))
	fresh.UpdatedAt = time.Now()
	require.NoError(t, repo.Save(ctx, fresh))

	removed, err := repo.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	got, err := repo.GetByUserID(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

// ---------------- UserRepository ----------------

func TestUserRepositoryUpsert(t *testing.T) {
	repo := repositories.NewUserRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "u1")
	assert.True(t, errors.Is(err, coredeps.ErrNotFound))

	user := &domain.User{UserID: "u1", Email: "ann@example.com", Name: "Ann", CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.Email)

	// 同一主键再次保存是更新
	user.Name = "Anna"
	require.NoError(t, repo.Save(ctx, user))
	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
}

// ---------------- OrderRepository ----------------

func newPersistedOrder(t *testing.T, repo *repositories.OrderRepositoryImpl, orderID, userID string) *domain.Order {
	t.Helper()
	order := domain.NewOrder(orderID, userID)
	require.NoError(t, order.AddItem("i1", "p1", 2, 500))
	order.ShippingAddress = &domain.ShippingAddress{Street: "1 Main St", City: "Springfield"}
	require.NoError(t, order.Confirm())
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	repo := repositories.NewOrderRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, coredeps.ErrNotFound))

	saved := newPersistedOrder(t, repo, "o1", "u1")

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, got.Status)
	assert.Equal(t, saved.TotalAmount(), got.TotalAmount())
	require.NotNil(t, got.ShippingAddress)
	assert.Equal(t, "Springfield", got.ShippingAddress.City)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
}

func TestOrderRepositorySaveUpdatesStatus(t *testing.T) {
	repo := repositories.NewOrderRepositoryImpl(openTestDB(t))
	ctx := context.Background()

	order := newPersistedOrder(t, repo, "o1", "u1")
	require.NoError(t, order.Cancel())
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
	// 项目没有因 upsert 而翻倍
	assert.Len(t, got.Items, 1)
}

func TestOrderRepositoryListByUserID(t *testing.T) {
	repo := repositories.NewOrderRepositoryImpl(openTestDB(t))

	newPersistedOrder(t, repo, "o1", "u1")
	newPersistedOrder(t, repo, "o2", "u1")
	newPersistedOrder(t, repo, "o3", "other")

	orders, err := repo.ListByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, "u1", order.UserID)
		assert.NotEmpty(t, order.Items)
	}
}
