// Package app 提供应用程序的运行循环：信号处理与优雅关闭。
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gocrud/shop/hosting"
	"github.com/gocrud/shop/logging"
)

// DefaultShutdownTimeout 默认优雅关闭超时
const DefaultShutdownTimeout = 30 * time.Second

// Run 启动托管服务并阻塞，直到收到终止信号、context 取消
// 或某个服务启动失败，然后在超时内优雅关闭。
func Run(ctx context.Context, manager *hosting.Manager, logger logging.Logger, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := manager.StartAll(runCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal",
			logging.Field{Key: "signal", Value: sig.String()})
	case <-ctx.Done():
		logger.Info("Context cancelled")
	case err := <-errCh:
		logger.Error("Hosted service failed, stopping application",
			logging.Field{Key: "error", Value: err.Error()})
		runErr = err
	}

	logger.Info("Shutting down",
		logging.Field{Key: "timeout", Value: shutdownTimeout.String()})
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	manager.StopAll(shutdownCtx)
	manager.Wait()

	logger.Info("Application stopped")
	return runErr
}
