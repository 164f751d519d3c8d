// Package worker 提供基于 cron 的后台任务调度，
// 以托管服务的形式接入应用生命周期。
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/gocrud/shop/logging"
)

// Job 后台任务。每次触发派生独立 context。
type Job func(ctx context.Context) error

// Scheduler Cron 调度器，实现 hosting.HostedService
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID

	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// NewScheduler 创建调度器
func NewScheduler(logger logging.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(newCronLogger(logger)),
		)),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob 注册定时任务
// spec: cron 表达式，如 "*/5 * * * *" (每5分钟) 或 "0 2 * * *" (每天凌晨2点)
func (s *Scheduler) AddJob(spec, name string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(spec, func() {
		s.logger.Info(fmt.Sprintf("Job '%s' started", name))
		if err := job(s.jobContext()); err != nil {
			s.logger.Error(fmt.Sprintf("Job '%s' failed", name),
				logging.Field{Key: "error", Value: err.Error()})
			return
		}
		s.logger.Info(fmt.Sprintf("Job '%s' completed", name))
	})
	if err != nil {
		return fmt.Errorf("failed to add job '%s': %w", name, err)
	}

	s.entries[name] = entryID
	s.logger.Info(fmt.Sprintf("Job '%s' registered with spec '%s'", name, spec))
	return nil
}

// RemoveJob 移除定时任务
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.entries[name]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, name)
		s.logger.Info(fmt.Sprintf("Job '%s' removed", name))
	}
}

func (s *Scheduler) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseCtx != nil {
		return s.baseCtx
	}
	return context.Background()
}

// Start 实现 HostedService.Start
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	count := len(s.entries)
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("Scheduler starting with %d jobs", count))
	s.cron.Start()

	<-ctx.Done()
	return nil
}

// Stop 实现 HostedService.Stop，等待运行中的任务收尾
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("Scheduler stopping")

	s.mu.Lock()
	if s.cancelBase != nil {
		s.cancelBase()
	}
	s.mu.Unlock()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger 适配器：将应用日志接口适配到 cron 的日志接口
type cronLogger struct {
	logger logging.Logger
}

func newCronLogger(logger logging.Logger) cron.Logger {
	return &cronLogger{logger: logger}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, convertToFields(keysAndValues)...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := convertToFields(keysAndValues)
	fields = append(fields, logging.Field{Key: "error", Value: err.Error()})
	l.logger.Error(msg, fields...)
}

func convertToFields(keysAndValues []interface{}) []logging.Field {
	fields := make([]logging.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields = append(fields, logging.Field{
			Key:   fmt.Sprintf("%v", keysAndValues[i]),
			Value: keysAndValues[i+1],
		})
	}
	return fields
}
