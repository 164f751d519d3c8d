package wiring_test

// 测试夹具：一套小型的能力/实现/服务类型，
// 形态与真实仓库的 Repository/Service 分层一致。

// DBHandle 模拟调用方提供的环境资源（如数据库会话）
type DBHandle struct {
	Name string
}

// CacheHandle 第二种资源类型，用于多资源测试
type CacheHandle struct {
	Addr string
}

// FooRepository 能力接口
type FooRepository interface {
	FindFoo(id string) string
}

// BarRepository 能力接口，用于仅名称匹配的负面测试
type BarRepository interface {
	FindBar() string
}

// FooRepositoryImpl 满足约定的实现：名称匹配且实现接口
type FooRepositoryImpl struct {
	db *DBHandle
}

func NewFooRepositoryImpl(db *DBHandle) *FooRepositoryImpl {
	return &FooRepositoryImpl{db: db}
}

func (r *FooRepositoryImpl) FindFoo(id string) string {
	return r.db.Name + ":" + id
}

// BarRepositoryImpl 名称匹配但没有 FindBar 方法，不满足接口
type BarRepositoryImpl struct{}

// FooService 依赖抽象能力的服务
type FooService struct {
	Repo FooRepository
}

func NewFooService(repo FooRepository) *FooService {
	return &FooService{Repo: repo}
}

// ReportService 两级依赖：服务依赖服务
type ReportService struct {
	Foo  *FooService
	Repo FooRepository
}

func NewReportService(foo *FooService, repo FooRepository) *ReportService {
	return &ReportService{Foo: foo, Repo: repo}
}

// QuxRepository 第二个有资源依赖的能力，用于共享资源测试
type QuxRepository interface {
	FindQux() string
}

type QuxRepositoryImpl struct {
	db *DBHandle
}

func NewQuxRepositoryImpl(db *DBHandle) *QuxRepositoryImpl {
	return &QuxRepositoryImpl{db: db}
}

func (r *QuxRepositoryImpl) FindQux() string {
	return r.db.Name + ":qux"
}

// PairService 同时依赖两个能力
type PairService struct {
	Foo FooRepository
	Qux QuxRepository
}

func NewPairService(foo FooRepository, qux QuxRepository) *PairService {
	return &PairService{Foo: foo, Qux: qux}
}

// LedgerService 依赖能力的单例候选。
// FooRepository 的实现需要每次调用的 *DBHandle，
// 用于验证单例不会透过传递依赖捕获调用方的资源。
type LedgerService struct {
	Repo FooRepository
}

func NewLedgerService(repo FooRepository) *LedgerService {
	return &LedgerService{Repo: repo}
}

// Clock 无依赖的单例候选，构造计数用于验证共享
type Clock struct {
	Seq int
}

// LoopA / LoopB 构成 A -> B -> A 的循环
type LoopA struct {
	B *LoopB
}

type LoopB struct {
	A *LoopA
}

func NewLoopA(b *LoopB) *LoopA { return &LoopA{B: b} }
func NewLoopB(a *LoopA) *LoopB { return &LoopB{A: a} }
