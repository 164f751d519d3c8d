package wiring

// FooRepositoryImpl 与外部测试包中的同名类型构成多重匹配：
// 裸类型名相同、都满足 FooRepository 接口，但来自不同的包。
type FooRepositoryImpl struct{}

func (r *FooRepositoryImpl) FindFoo(id string) string {
	return "internal:" + id
}

// NewInternalFooRepositoryImpl 供外部测试包引用的构造函数
func NewInternalFooRepositoryImpl() *FooRepositoryImpl {
	return &FooRepositoryImpl{}
}

// FooRepository 与外部测试包中的同名接口构成裸名相同的能力对，
// 两者都被同一个实现在结构上满足。
type FooRepository interface {
	FindFoo(id string) string
}
