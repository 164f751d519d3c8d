// Package bootstrap 在进程启动时完成一次性的组件扫描与注册表引导。
//
// 这是整个仓库里唯一列举候选类型的地方：能力接口、实现构造函数
// 和环境资源类型都在此显式声明，注册表在提交后立即冻结，
// 不存在任何 import 副作用式的隐式注册。
// 引导必须先于任何 Factory.Create 调用完成，该顺序由宿主进程的
// 初始化序列保证。
package bootstrap

import (
	"fmt"
	"reflect"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"github.com/gocrud/shop/core/repositories"
	"github.com/gocrud/shop/core/services"
	"github.com/gocrud/shop/infra/audit"
	"github.com/gocrud/shop/infra/cache"
	dbrepos "github.com/gocrud/shop/infra/db/repositories"
	"github.com/gocrud/shop/logging"
	"github.com/gocrud/shop/wiring"
)

// ResourceTypes 调用方在每次解析时直接提供的环境资源类型。
// 按精确类型标识识别，新增资源类型需要同步更新这里。
func ResourceTypes() []reflect.Type {
	return []reflect.Type{
		wiring.TypeOf[*gorm.DB](),
		wiring.TypeOf[*redis.Client](),
		wiring.TypeOf[*mongo.Client](),
	}
}

// Capabilities 核心层声明的全部抽象能力
func Capabilities() []reflect.Type {
	return []reflect.Type{
		wiring.TypeOf[repositories.CartRepository](),
		wiring.TypeOf[repositories.UserRepository](),
		wiring.TypeOf[repositories.OrderRepository](),
		wiring.TypeOf[repositories.CartCache](),
		wiring.TypeOf[repositories.AuditTrail](),
	}
}

// Providers 全部实现构造函数及其生命周期声明。
// Repository 和 Service 均为瞬态：每个请求一个全新实例，
// 与按请求派生的数据库会话同生命周期。
func Providers() []wiring.Provider {
	return []wiring.Provider{
		wiring.Transient(dbrepos.NewCartRepositoryImpl),
		wiring.Transient(dbrepos.NewUserRepositoryImpl),
		wiring.Transient(dbrepos.NewOrderRepositoryImpl),
		wiring.Transient(cache.NewCartCacheImpl),
		wiring.Transient(audit.NewAuditTrailImpl),
		wiring.Transient(services.NewCartService),
		wiring.Transient(services.NewUserService),
		wiring.Transient(services.NewOrderService),
	}
}

// NewFactory 扫描候选、提交注册表并冻结，返回组件工厂。
func NewFactory(logger logging.Logger, opts ...wiring.ScannerOption) (*wiring.Factory, *wiring.Registry, error) {
	intro := wiring.NewIntrospector(ResourceTypes()...)
	scanner := wiring.NewScanner(intro, logger, opts...)

	bindings, err := scanner.Scan(Capabilities(), Providers())
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: component scan failed: %w", err)
	}

	registry := wiring.NewRegistry(logger)
	for _, b := range bindings {
		if err := registry.Register(b); err != nil {
			return nil, nil, fmt.Errorf("bootstrap: registration failed: %w", err)
		}
	}
	registry.Freeze()

	if logger != nil {
		for _, b := range registry.List() {
			capName := "-"
			if b.Capability != nil {
				capName = b.Capability.String()
			}
			logger.Debug("Component registered",
				logging.Field{Key: "capability", Value: capName},
				logging.Field{Key: "impl", Value: b.Impl.String()},
				logging.Field{Key: "lifetime", Value: b.Lifetime.String()})
		}
	}

	return wiring.NewFactory(registry), registry, nil
}
