package wiring

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gocrud/shop/logging"
)

// Registry 保存能力类型到实现绑定的映射。
//
// 生命周期：在进程启动的引导阶段写入一次，随后 Freeze。
// 冻结之后注册表视为不可变，并发读取只做一次 atomic load，无需加锁。
type Registry struct {
	mu       sync.RWMutex
	frozen   atomic.Bool
	bindings map[reflect.Type]*Binding
	logger   logging.Logger
}

// NewRegistry 创建一个空注册表。
func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{
		bindings: make(map[reflect.Type]*Binding),
		logger:   logger,
	}
}

// Register 插入或覆盖一个绑定。
//
// 同一绑定的重复注册是幂等的；不同实现覆盖已有能力时采用
// last-write-wins 并记录警告（扫描器的确定性选择已经在其之前发生，
// 这里的警告针对引导代码的手动覆盖）。
func (r *Registry) Register(b *Binding) error {
	if r.frozen.Load() {
		return fmt.Errorf("wiring: registry is frozen, cannot register %v", b.Impl)
	}
	if b.Impl == nil || !b.ctor.IsValid() {
		return fmt.Errorf("wiring: binding for %v has no constructor, bindings must come from Scanner.Scan", b.Impl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 能力键和具体实现键都可解析，解析器按 2(b)/2(c) 均会命中
	keys := []reflect.Type{b.Impl}
	if b.Capability != nil {
		keys = append(keys, b.Capability)
	}

	for _, key := range keys {
		if existing, ok := r.bindings[key]; ok && !existing.equivalent(b) {
			if r.logger != nil {
				r.logger.Warn("Overwriting existing binding",
					logging.Field{Key: "key", Value: key.String()},
					logging.Field{Key: "old", Value: existing.Impl.String()},
					logging.Field{Key: "new", Value: b.Impl.String()})
			}
		}
		r.bindings[key] = b
	}
	return nil
}

// Resolve 查找类型对应的绑定。未注册的类型返回 *UnknownCapabilityError。
func (r *Registry) Resolve(t reflect.Type) (*Binding, error) {
	// 冻结后绑定不可变，依赖 atomic.Bool 的内存屏障即可安全读取
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}

	b, ok := r.bindings[t]
	if !ok {
		return nil, &UnknownCapabilityError{Capability: t}
	}
	return b, nil
}

// List 返回所有绑定，按实现类型名排序，用于诊断输出。
func (r *Registry) List() []*Binding {
	r.mu.RLock()
	seen := make(map[*Binding]struct{}, len(r.bindings))
	out := make([]*Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Impl.String() < out[j].Impl.String()
	})
	return out
}

// Freeze 结束引导阶段。冻结后 Register 返回错误，读取无需加锁。
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Frozen 报告注册表是否已冻结。
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}
