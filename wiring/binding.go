package wiring

import (
	"reflect"
	"sync"
)

// Lifetime 定义了绑定的生命周期策略。
type Lifetime int

const (
	// LifetimeTransient 每次解析创建一个新实例（默认）。
	LifetimeTransient Lifetime = iota
	// LifetimeSingleton 进程生命周期内共享一个实例。
	// 单例绑定的构造函数不允许依赖每次调用提供的原始资源。
	LifetimeSingleton
)

func (l Lifetime) String() string {
	switch l {
	case LifetimeTransient:
		return "transient"
	case LifetimeSingleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// DependencyKind 区分构造函数参数的两种依赖类别。
type DependencyKind int

const (
	// DependencyResource 原始资源：由调用方直接提供的已构造值（如数据库会话）。
	// 按精确的类型标识识别，不做约定推断。
	DependencyResource DependencyKind = iota
	// DependencyCapability 能力：需要通过注册表查找实现并递归构造。
	DependencyCapability
)

// Dependency 描述构造函数的一个参数。
// Go 反射不暴露参数名，因此依赖以位置和类型标识，位置仅用于错误消息。
type Dependency struct {
	Index int
	Type  reflect.Type
	Kind  DependencyKind
}

// Binding 将一个能力类型绑定到它的具体实现。
// Capability 为 nil 表示直接按具体类型注册（例如 Service 类型本身）。
type Binding struct {
	Capability reflect.Type
	Impl       reflect.Type
	Lifetime   Lifetime

	ctor reflect.Value
	deps []Dependency

	// 单例生命周期
	once     sync.Once
	instance any
	instErr  error
}

// Dependencies 返回绑定的有序依赖列表（副本）。
func (b *Binding) Dependencies() []Dependency {
	out := make([]Dependency, len(b.deps))
	copy(out, b.deps)
	return out
}

// equivalent 判断两个绑定是否为同一注册（用于幂等的重复注册）。
// 函数值不能用 == 比较，退而比较构造函数的代码指针。
func (b *Binding) equivalent(other *Binding) bool {
	return b.Capability == other.Capability &&
		b.Impl == other.Impl &&
		b.Lifetime == other.Lifetime &&
		b.ctor.Pointer() == other.ctor.Pointer()
}

// Provider 将实现的构造函数与其生命周期策略配对，作为扫描的输入。
type Provider struct {
	Ctor     any
	Lifetime Lifetime
}

// Transient 声明一个每次解析都重新构造的实现。
func Transient(ctor any) Provider {
	return Provider{Ctor: ctor, Lifetime: LifetimeTransient}
}

// Singleton 声明一个进程级共享的实现。
func Singleton(ctor any) Provider {
	return Provider{Ctor: ctor, Lifetime: LifetimeSingleton}
}

// TypeOf 获取类型 T 的 reflect.Type（泛型辅助函数）。
//
// 常用于声明能力候选和资源类型：
//
//	caps := []reflect.Type{wiring.TypeOf[repositories.CartRepository]()}
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
