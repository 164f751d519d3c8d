package wiring

import (
	"fmt"
	"reflect"
	"strings"
)

// UnknownCapabilityError 表示请求的能力类型没有注册任何实现。
// 扫描阶段不会因缺少实现而失败，错误延迟到首次解析时抛出。
type UnknownCapabilityError struct {
	Capability reflect.Type
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("wiring: no implementation registered for capability %v", e.Capability)
}

// UnannotatedDependencyError 表示构造函数的某个参数缺少可用的类型信息
// （例如 any/interface{}），解析器无法将其归类为资源或能力。
// 该错误在扫描阶段抛出，而不是在递归构造的深处。
type UnannotatedDependencyError struct {
	Ctor  reflect.Type
	Index int
}

func (e *UnannotatedDependencyError) Error() string {
	return fmt.Sprintf("wiring: constructor %v parameter %d has no usable type information", e.Ctor, e.Index)
}

// CircularDependencyError 表示解析过程中检测到实现类型之间的循环依赖。
// Cycle 包含完整的循环路径，首尾为同一类型。
type CircularDependencyError struct {
	Cycle []reflect.Type
}

func (e *CircularDependencyError) Error() string {
	names := make([]string, 0, len(e.Cycle))
	for _, t := range e.Cycle {
		names = append(names, t.String())
	}
	return "wiring: circular dependency detected: " + strings.Join(names, " -> ")
}

// MissingResourceError 表示依赖图中的某个节点需要一个原始资源，
// 但调用方没有在本次 Create 调用中提供该资源。属于调用方契约违反。
type MissingResourceError struct {
	Resource reflect.Type
	Impl     reflect.Type
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("wiring: resource %v required by %v was not supplied", e.Resource, e.Impl)
}

// AmbiguousBindingError 表示多个实现同时满足同一能力。
// 仅在严格模式（WithStrictBindings）下作为扫描错误返回，
// 默认策略为确定性的 last-write-wins 并记录警告。
type AmbiguousBindingError struct {
	Capability reflect.Type
	Impls      []reflect.Type
}

func (e *AmbiguousBindingError) Error() string {
	names := make([]string, 0, len(e.Impls))
	for _, t := range e.Impls {
		names = append(names, t.String())
	}
	return fmt.Sprintf("wiring: capability %v matched by multiple implementations: %s",
		e.Capability, strings.Join(names, ", "))
}
