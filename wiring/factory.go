package wiring

import (
	"fmt"
	"reflect"
)

// Factory 是外围应用获取已装配实例的唯一入口。
//
// HTTP 处理器、CLI 命令和后台任务在每个工作单元开始时调用
// Create，传入本次调用的环境资源（数据库会话等），得到
// 完整构造的 Service 或 Repository 实例。构造是纯 CPU 的图遍历，
// 无阻塞点，不需要 context。
type Factory struct {
	resolver resolver
}

// NewFactory 基于已引导完成的注册表创建工厂。
func NewFactory(registry *Registry) *Factory {
	return &Factory{resolver: resolver{registry: registry}}
}

// Create 构造目标类型的实例。target 可以是能力类型或具体的实现/服务类型。
//
// 每次调用产生全新的对象图，工厂不做任何缓存或池化；
// 原始资源是调用方的既有实例，在一次调用内按原样复用。
// 所有错误同步抛出并原样向上传播，不重试。
func (f *Factory) Create(target reflect.Type, resources Resources) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("wiring: target type is nil")
	}
	ctx := newResolutionContext(resources)
	return f.resolver.resolve(ctx, target)
}

// Create 是 Factory.Create 的泛型便捷包装。
//
//	svc, err := wiring.Create[*services.CartService](factory, res)
func Create[T any](f *Factory, resources Resources) (T, error) {
	var zero T

	v, err := f.Create(TypeOf[T](), resources)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("wiring: resolved value is %T, expected %v", v, TypeOf[T]())
	}
	return typed, nil
}
