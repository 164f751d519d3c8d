// Package hosting 提供托管服务的生命周期管理。
package hosting

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gocrud/shop/logging"
)

// HostedService 托管服务接口。
// 管理器在独立的 goroutine 中调用 Start，服务应阻塞运行直到
// context 被取消或发生错误；Stop 用于额外的优雅关闭逻辑。
type HostedService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Manager 托管服务管理器
type Manager struct {
	services []HostedService
	logger   logging.Logger
	wg       sync.WaitGroup
}

// NewManager 创建托管服务管理器
func NewManager(logger logging.Logger) *Manager {
	return &Manager{logger: logger}
}

// Add 添加托管服务
func (m *Manager) Add(service HostedService) {
	m.services = append(m.services, service)
}

// StartAll 并发启动所有托管服务，返回错误通道。
// context 取消导致的退出不算错误。
func (m *Manager) StartAll(ctx context.Context) <-chan error {
	errCh := make(chan error, len(m.services))

	m.logger.Info("Starting hosted services",
		logging.Field{Key: "count", Value: len(m.services)})

	for i, service := range m.services {
		m.wg.Add(1)
		go func(index int, svc HostedService) {
			defer m.wg.Done()

			if err := svc.Start(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					m.logger.Debug(fmt.Sprintf("Hosted service %d stopped (context done)", index+1))
					return
				}
				m.logger.Error(fmt.Sprintf("Hosted service %d failed", index+1),
					logging.Field{Key: "error", Value: err.Error()})
				errCh <- err
			}
		}(i, service)
	}

	return errCh
}

// StopAll 反向顺序停止所有托管服务
func (m *Manager) StopAll(ctx context.Context) {
	for i := len(m.services) - 1; i >= 0; i-- {
		if err := m.services[i].Stop(ctx); err != nil {
			m.logger.Error(fmt.Sprintf("Failed to stop hosted service %d", i+1),
				logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

// Wait 等待所有服务的 Start goroutine 退出
func (m *Manager) Wait() {
	m.wg.Wait()
}
