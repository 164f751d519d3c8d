package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/gocrud/shop/core/services"
	"github.com/gocrud/shop/logging"
	"github.com/gocrud/shop/wiring"
)

// ResourceFunc 为一次任务执行构建资源映射
type ResourceFunc func(ctx context.Context) wiring.Resources

// DefaultCartRetention 购物车默认保留期
const DefaultCartRetention = 30 * 24 * time.Hour

// NewStaleCartCleanup 创建过期购物车清理任务。
// 服务在每次执行时装配，与请求处理共用同一套装配流程。
func NewStaleCartCleanup(factory *wiring.Factory, resources ResourceFunc, retention time.Duration, logger logging.Logger) Job {
	if retention <= 0 {
		retention = DefaultCartRetention
	}

	return func(ctx context.Context) error {
		svc, err := wiring.Create[*services.CartService](factory, resources(ctx))
		if err != nil {
			return fmt.Errorf("failed to assemble cart service: %w", err)
		}

		removed, err := svc.PurgeStale(ctx, retention)
		if err != nil {
			return err
		}

		logger.Info("Stale carts purged",
			logging.Field{Key: "removed", Value: removed},
			logging.Field{Key: "retention", Value: retention.String()})
		return nil
	}
}
