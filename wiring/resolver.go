package wiring

import (
	"fmt"
	"reflect"
)

// Resources 是一次 Create 调用的原始资源映射：
// 资源类型 -> 调用方已构造的实例。按精确类型标识查找。
type Resources map[reflect.Type]any

// NewResources 创建空的资源映射。
func NewResources() Resources {
	return make(Resources)
}

// SetResource 以静态类型 T 为键存入资源。
//
// 使用泛型固定键类型，避免接口值经 reflect.TypeOf 解包后
// 键落在动态类型上：
//
//	res := wiring.NewResources()
//	wiring.SetResource(res, db) // 键为 *gorm.DB
func SetResource[T any](r Resources, value T) {
	r[reflect.TypeOf((*T)(nil)).Elem()] = value
}

// resolutionContext 单次 Create 调用的临时解析状态。
// 每次调用新建，调用间绝不共享。
type resolutionContext struct {
	resources  Resources
	inProgress map[reflect.Type]bool
	stack      []reflect.Type // 当前构造路径，用于循环报告
}

func newResolutionContext(resources Resources) *resolutionContext {
	if resources == nil {
		resources = NewResources()
	}
	return &resolutionContext{
		resources:  resources,
		inProgress: make(map[reflect.Type]bool),
	}
}

// withoutResources 派生一个资源为空的上下文。
// 循环检测状态（inProgress、stack）与原上下文共享，
// 单例构造用它隔离调用方的原始资源。
func (c *resolutionContext) withoutResources() *resolutionContext {
	return &resolutionContext{
		resources:  NewResources(),
		inProgress: c.inProgress,
		stack:      c.stack,
	}
}

// resolver 递归构建以请求类型为根的实例图。
type resolver struct {
	registry *Registry
}

// resolve 解析目标类型 T：
//
//	a. T 是上下文中已有的原始资源 -> 直接返回，不构造
//	b. T 是能力类型 -> 注册表查到实现绑定，递归
//	c. T 是实现类型 -> 循环检查、依赖深度优先解析、调用构造函数
func (r *resolver) resolve(ctx *resolutionContext, target reflect.Type) (any, error) {
	if v, ok := ctx.resources[target]; ok {
		return v, nil
	}

	b, err := r.registry.Resolve(target)
	if err != nil {
		return nil, err
	}

	return r.instantiate(ctx, b)
}

// instantiate 构造一个绑定的实例。
func (r *resolver) instantiate(ctx *resolutionContext, b *Binding) (any, error) {
	if b.Lifetime == LifetimeSingleton {
		// 单例在空资源上下文中构造一次，之后所有调用共享。
		// 扫描期只检查直接的资源参数；传递依赖若触达每次调用的
		// 原始资源，这里以 MissingResourceError 失败，
		// 绝不捕获首个调用方的实例。
		b.once.Do(func() {
			b.instance, b.instErr = r.construct(ctx.withoutResources(), b)
		})
		return b.instance, b.instErr
	}
	return r.construct(ctx, b)
}

func (r *resolver) construct(ctx *resolutionContext, b *Binding) (any, error) {
	if ctx.inProgress[b.Impl] {
		return nil, &CircularDependencyError{Cycle: cyclePath(ctx.stack, b.Impl)}
	}
	ctx.inProgress[b.Impl] = true
	ctx.stack = append(ctx.stack, b.Impl)
	defer func() {
		delete(ctx.inProgress, b.Impl)
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
	}()

	// 依构造函数声明顺序从左到右解析，顺序只影响错误消息
	args := make([]reflect.Value, len(b.deps))
	for i, dep := range b.deps {
		switch dep.Kind {
		case DependencyResource:
			v, ok := ctx.resources[dep.Type]
			if !ok {
				return nil, &MissingResourceError{Resource: dep.Type, Impl: b.Impl}
			}
			args[i] = reflect.ValueOf(v)
		case DependencyCapability:
			v, err := r.resolve(ctx, dep.Type)
			if err != nil {
				return nil, err
			}
			args[i] = reflect.ValueOf(v)
		}
	}

	return invokeCtor(b, args)
}

// invokeCtor 调用构造函数，检查尾部 error 返回值和 nil 实例。
func invokeCtor(b *Binding, args []reflect.Value) (any, error) {
	results := b.ctor.Call(args)

	if len(results) == 2 {
		if !results[1].IsNil() {
			return nil, fmt.Errorf("wiring: constructor for %v failed: %w",
				b.Impl, results[1].Interface().(error))
		}
	}

	first := results[0]
	if first.Kind() == reflect.Pointer || first.Kind() == reflect.Interface {
		if first.IsNil() {
			return nil, fmt.Errorf("wiring: constructor for %v returned nil instance", b.Impl)
		}
	}
	return first.Interface(), nil
}

// cyclePath 从当前构造路径中截取循环段，首尾为重复的类型。
func cyclePath(stack []reflect.Type, repeated reflect.Type) []reflect.Type {
	start := 0
	for i, t := range stack {
		if t == repeated {
			start = i
			break
		}
	}
	cycle := make([]reflect.Type, 0, len(stack)-start+1)
	cycle = append(cycle, stack[start:]...)
	cycle = append(cycle, repeated)
	return cycle
}
