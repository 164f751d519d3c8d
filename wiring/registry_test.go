package wiring_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gocrud/shop/logging"
	"github.com/gocrud/shop/wiring"
)

func scanBindings(t *testing.T, capabilities []reflect.Type, providers []wiring.Provider) []*wiring.Binding {
	t.Helper()
	scanner := wiring.NewScanner(newTestIntrospector(), newTestLogger())
	bindings, err := scanner.Scan(capabilities, providers)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return bindings
}

func TestRegistryResolveByCapabilityAndImpl(t *testing.T) {
	bindings := scanBindings(t,
		[]reflect.Type{wiring.TypeOf[FooRepository]()},
		[]wiring.Provider{wiring.Transient(NewFooRepositoryImpl)},
	)

	registry := wiring.NewRegistry(newTestLogger())
	for _, b := range bindings {
		if err := registry.Register(b); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	// 能力键和实现键指向同一个绑定
	byCap, err := registry.Resolve(wiring.TypeOf[FooRepository]())
	if err != nil {
		t.Fatalf("Resolve by capability failed: %v", err)
	}
	byImpl, err := registry.Resolve(wiring.TypeOf[*FooRepositoryImpl]())
	if err != nil {
		t.Fatalf("Resolve by impl failed: %v", err)
	}
	if byCap != byImpl {
		t.Error("capability and impl keys must resolve to the same binding")
	}
}

func TestRegistryUnknownCapability(t *testing.T) {
	registry := wiring.NewRegistry(newTestLogger())

	_, err := registry.Resolve(wiring.TypeOf[FooRepository]())

	var unknown *wiring.UnknownCapabilityError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCapabilityError, got %v", err)
	}
	if unknown.Capability != wiring.TypeOf[FooRepository]() {
		t.Errorf("error must name the requested capability, got %v", unknown.Capability)
	}
}

func TestRegistryRejectsRegisterAfterFreeze(t *testing.T) {
	bindings := scanBindings(t, nil,
		[]wiring.Provider{wiring.Transient(NewFooService)})

	registry := wiring.NewRegistry(newTestLogger())
	registry.Freeze()

	if !registry.Frozen() {
		t.Fatal("Frozen() must report true after Freeze")
	}
	if err := registry.Register(bindings[0]); err == nil {
		t.Error("Register after Freeze must fail")
	}
}

func TestRegistryIdempotentReRegister(t *testing.T) {
	bindings := scanBindings(t,
		[]reflect.Type{wiring.TypeOf[FooRepository]()},
		[]wiring.Provider{wiring.Transient(NewFooRepositoryImpl)},
	)

	registry := wiring.NewRegistry(newTestLogger())
	for i := 0; i < 3; i++ {
		if err := registry.Register(bindings[0]); err != nil {
			t.Fatalf("re-register %d failed: %v", i, err)
		}
	}

	if got := len(registry.List()); got != 1 {
		t.Errorf("expected 1 binding after idempotent re-register, got %d", got)
	}
}

func TestRegistryReRegisterAcrossScans(t *testing.T) {
	// 两次独立扫描产出不同的 Binding 结构体，构造函数相同：
	// 重复注册是幂等的，不触发覆盖告警
	var buf bytes.Buffer
	logger := logging.NewLoggingBuilder().SetOutput(&buf).Build("wiring")

	registry := wiring.NewRegistry(logger)
	for i := 0; i < 2; i++ {
		bindings := scanBindings(t,
			[]reflect.Type{wiring.TypeOf[FooRepository]()},
			[]wiring.Provider{wiring.Transient(NewFooRepositoryImpl)},
		)
		b := findBinding(t, bindings, wiring.TypeOf[*FooRepositoryImpl]())
		if err := registry.Register(b); err != nil {
			t.Fatalf("register from scan %d failed: %v", i, err)
		}
	}

	if got := len(registry.List()); got != 1 {
		t.Errorf("expected 1 binding after re-register, got %d", got)
	}
	if out := buf.String(); strings.Contains(out, "Overwriting") {
		t.Errorf("equivalent re-registration must not warn:\n%s", out)
	}
}

func TestRegistryListSorted(t *testing.T) {
	bindings := scanBindings(t,
		[]reflect.Type{wiring.TypeOf[FooRepository]()},
		[]wiring.Provider{
			wiring.Transient(NewReportService),
			wiring.Transient(NewFooService),
			wiring.Transient(NewFooRepositoryImpl),
		},
	)

	registry := wiring.NewRegistry(newTestLogger())
	for _, b := range bindings {
		if err := registry.Register(b); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 distinct bindings, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Impl.String() > list[i].Impl.String() {
			t.Errorf("List must be sorted: %v before %v", list[i-1].Impl, list[i].Impl)
		}
	}
}
