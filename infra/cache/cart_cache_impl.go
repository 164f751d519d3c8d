// Package cache 是核心缓存契约的 Redis 实现。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gocrud/shop/core/domain"
)

// DefaultSnapshotTTL 购物车快照的默认过期时间
const DefaultSnapshotTTL = 15 * time.Minute

// CartCacheImpl CartCache 的 Redis 实现。
// 快照以 JSON 存储，键格式 cart:{userID}。
type CartCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartCacheImpl 创建购物车缓存
func NewCartCacheImpl(client *redis.Client) *CartCacheImpl {
	return &CartCacheImpl{client: client, ttl: DefaultSnapshotTTL}
}

// Get 读取缓存的购物车快照，未命中返回 (nil, nil)
func (c *CartCacheImpl) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := c.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart cache: read failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// 损坏的快照按未命中处理，下次 Put 覆盖
		return nil, nil
	}
	return &cart, nil
}

// Put 写入购物车快照
func (c *CartCacheImpl) Put(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart cache: marshal failed: %w", err)
	}
	if err := c.client.Set(ctx, cartKey(cart.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cart cache: write failed: %w", err)
	}
	return nil
}

// Invalidate 使用户的快照失效
func (c *CartCacheImpl) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("cart cache: invalidate failed: %w", err)
	}
	return nil
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// NewClient 创建 Redis 客户端并验证连通性
func NewClient(addr, password string, dbIndex int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}
	return client, nil
}
