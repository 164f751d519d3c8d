package api

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"github.com/gocrud/shop/wiring"
)

// ResourceSet 进程级共享的环境资源句柄。
// 连接池句柄全局一处创建，每个请求派生请求作用域的资源映射。
type ResourceSet struct {
	DB    *gorm.DB
	Redis *redis.Client
	Mongo *mongo.Client
}

// PerRequest 构建一次请求的资源映射。
// 数据库句柄绑定请求 context，缓存与审计客户端本身即请求安全。
func (r ResourceSet) PerRequest(ctx context.Context) wiring.Resources {
	res := wiring.NewResources()
	if r.DB != nil {
		wiring.SetResource(res, r.DB.WithContext(ctx))
	}
	if r.Redis != nil {
		wiring.SetResource(res, r.Redis)
	}
	if r.Mongo != nil {
		wiring.SetResource(res, r.Mongo)
	}
	return res
}
