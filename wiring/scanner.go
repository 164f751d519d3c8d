package wiring

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gocrud/shop/logging"
)

// DefaultImplSuffix 实现类型的命名约定后缀。
// 能力 CartRepository 的实现约定命名为 CartRepositoryImpl。
const DefaultImplSuffix = "Impl"

// Scanner 枚举候选类型并产出建议的绑定集合。
//
// 匹配规则：实现类型名等于能力类型名加固定后缀，且实现在结构上
// 满足该能力接口（reflect Implements 检查，而非仅凭名称）。
// 仅名称匹配但不满足接口的组合会被跳过并记录警告，避免静默误绑定。
type Scanner struct {
	suffix string
	strict bool
	intro  *Introspector
	logger logging.Logger
}

// ScannerOption 配置扫描器。
type ScannerOption func(*Scanner)

// WithSuffix 覆盖实现类型的命名后缀约定。
func WithSuffix(suffix string) ScannerOption {
	return func(s *Scanner) {
		s.suffix = suffix
	}
}

// WithStrictBindings 启用严格模式：同一能力匹配到多个实现时
// 扫描失败（AmbiguousBindingError），而不是 last-write-wins。
func WithStrictBindings() ScannerOption {
	return func(s *Scanner) {
		s.strict = true
	}
}

// NewScanner 创建扫描器。
func NewScanner(intro *Introspector, logger logging.Logger, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		suffix: DefaultImplSuffix,
		intro:  intro,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan 对候选能力和候选实现做一次完整匹配，返回绑定集合。
//
// capabilities 是抽象能力（接口类型）；providers 是具体实现的构造函数
// 及其生命周期声明。没有匹配到任何能力的 provider 按其具体类型直接
// 注册（Service 类型走这条路径）。没有实现的能力只记录警告，
// 失败延迟到首次解析。
//
// 一个实现最多绑定一个能力：多个裸名相同的能力（来自不同的包）
// 都匹配同一实现时，保留 capabilities 列表中靠前的那个并记录警告。
//
// 输出按实现类型名排序，对相同输入是确定且与顺序无关的。
func (s *Scanner) Scan(capabilities []reflect.Type, providers []Provider) ([]*Binding, error) {
	for _, cap := range capabilities {
		if cap == nil || cap.Kind() != reflect.Interface {
			return nil, fmt.Errorf("wiring: capability candidate %v is not an interface type", cap)
		}
	}

	// 先做签名检查，构造前暴露所有不可用的构造函数
	bindings := make([]*Binding, 0, len(providers))
	for _, p := range providers {
		b, err := newBinding(p, s.intro)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	// 确定性：按实现名排序后再匹配，多重匹配时 last-write-wins
	// 的赢家与输入顺序无关
	sort.Slice(bindings, func(i, j int) bool {
		ni, nj := implName(bindings[i].Impl), implName(bindings[j].Impl)
		if ni != nj {
			return ni < nj
		}
		// 裸名相同的实现来自不同的包，用完整类型名决出次序
		return bindings[i].Impl.String() < bindings[j].Impl.String()
	})

	matched := make(map[reflect.Type][]*Binding) // capability -> 满足约定的实现
	for _, b := range bindings {
		name := implName(b.Impl)
		for _, cap := range capabilities {
			if cap.Name()+s.suffix != name {
				continue
			}
			if !b.Impl.Implements(cap) {
				if s.logger != nil {
					s.logger.Warn("Implementation matches capability by name but not structurally, skipping",
						logging.Field{Key: "capability", Value: cap.String()},
						logging.Field{Key: "impl", Value: b.Impl.String()})
				}
				continue
			}
			// 裸名相同的能力可能来自不同的包，实现只保留首个匹配
			if b.Capability != nil {
				if s.logger != nil {
					s.logger.Warn("Implementation already bound to a same-named capability, keeping first match",
						logging.Field{Key: "capability", Value: cap.String()},
						logging.Field{Key: "bound", Value: b.Capability.String()},
						logging.Field{Key: "impl", Value: b.Impl.String()})
				}
				continue
			}
			matched[cap] = append(matched[cap], b)
			b.Capability = cap
		}
	}

	for cap, impls := range matched {
		if len(impls) < 2 {
			continue
		}
		if s.strict {
			types := make([]reflect.Type, 0, len(impls))
			for _, b := range impls {
				types = append(types, b.Impl)
			}
			return nil, &AmbiguousBindingError{Capability: cap, Impls: types}
		}
		// 排序在前，最后一个实现胜出；落选者保留为直接的具体类型绑定
		winner := impls[len(impls)-1]
		for _, b := range impls[:len(impls)-1] {
			if b.Capability == cap {
				b.Capability = nil
			}
		}
		if s.logger != nil {
			s.logger.Warn("Multiple implementations matched capability, keeping last",
				logging.Field{Key: "capability", Value: cap.String()},
				logging.Field{Key: "impl", Value: winner.Impl.String()},
				logging.Field{Key: "candidates", Value: len(impls)})
		}
	}

	if s.logger != nil {
		for _, cap := range capabilities {
			if _, ok := matched[cap]; !ok {
				s.logger.Warn("Capability has no implementation, resolution will fail on first use",
					logging.Field{Key: "capability", Value: cap.String()})
			}
		}
	}

	return bindings, nil
}

// newBinding 从 provider 构建绑定，包含扫描期的所有签名检查。
func newBinding(p Provider, intro *Introspector) (*Binding, error) {
	implType, deps, err := intro.Inspect(p.Ctor)
	if err != nil {
		return nil, err
	}

	if p.Lifetime == LifetimeSingleton {
		for _, d := range deps {
			if d.Kind == DependencyResource {
				return nil, fmt.Errorf(
					"wiring: singleton %v cannot depend on per-call resource %v (parameter %d)",
					implType, d.Type, d.Index)
			}
		}
	}

	return &Binding{
		Impl:     implType,
		Lifetime: p.Lifetime,
		ctor:     reflect.ValueOf(p.Ctor),
		deps:     deps,
	}, nil
}

// implName 取实现类型的裸名称，指针类型取其元素名。
func implName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
