package wiring

import (
	"fmt"
	"reflect"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
)

// Introspector 检查构造函数签名，提取有序的依赖列表。
//
// 参数分类规则：
//   - 类型属于固定的环境资源集合 -> DependencyResource（精确类型标识匹配）
//   - 其他 -> DependencyCapability（期望可通过 Registry 解析）
type Introspector struct {
	resources map[reflect.Type]struct{}
}

// NewIntrospector 创建签名检查器。
// resourceTypes 是调用方承诺在每次 Create 时直接提供的环境类型，
// 例如 *gorm.DB、*redis.Client。
func NewIntrospector(resourceTypes ...reflect.Type) *Introspector {
	set := make(map[reflect.Type]struct{}, len(resourceTypes))
	for _, t := range resourceTypes {
		set[t] = struct{}{}
	}
	return &Introspector{resources: set}
}

// IsResource 判断类型是否属于环境资源集合。
func (in *Introspector) IsResource(t reflect.Type) bool {
	_, ok := in.resources[t]
	return ok
}

// Inspect 检查一个构造函数，返回其产出的实现类型和依赖列表。
//
// 合法的构造函数形如 func(deps...) *Impl 或 func(deps...) (*Impl, error)。
// 无法分类的参数（any）返回 *UnannotatedDependencyError，
// 该检查发生在扫描阶段，先于任何构造。
func (in *Introspector) Inspect(ctor any) (reflect.Type, []Dependency, error) {
	if ctor == nil {
		return nil, nil, fmt.Errorf("wiring: constructor is nil")
	}

	fnType := reflect.TypeOf(ctor)
	if fnType.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("wiring: constructor must be a function, got %v", fnType)
	}
	if fnType.IsVariadic() {
		return nil, nil, fmt.Errorf("wiring: variadic constructor %v is not supported", fnType)
	}

	switch fnType.NumOut() {
	case 1:
		// 仅返回实例
	case 2:
		if !fnType.Out(1).Implements(errorType) {
			return nil, nil, fmt.Errorf("wiring: constructor %v second result must be error", fnType)
		}
	default:
		return nil, nil, fmt.Errorf("wiring: constructor %v must return (instance) or (instance, error)", fnType)
	}

	implType := fnType.Out(0)

	deps := make([]Dependency, 0, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)

		// any 参数没有可用的类型信息，无法归类
		if paramType == anyType {
			return nil, nil, &UnannotatedDependencyError{Ctor: fnType, Index: i}
		}

		kind := DependencyCapability
		if in.IsResource(paramType) {
			kind = DependencyResource
		}

		deps = append(deps, Dependency{Index: i, Type: paramType, Kind: kind})
	}

	return implType, deps, nil
}
