package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/shop/logging"
)

// Controller 控制器接口
type Controller interface {
	// MountRoutes 注册路由
	MountRoutes(router gin.IRouter)
}

// Builder Web 服务构建器（基于 Gin）
type Builder struct {
	port        int
	engine      *gin.Engine
	controllers []Controller
	logger      logging.Logger
	mounted     bool
}

// NewBuilder 创建 Web 构建器
func NewBuilder(logger logging.Logger) *Builder {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Builder{
		port:   8080,
		engine: engine,
		logger: logger,
	}
}

// UsePort 设置端口
func (b *Builder) UsePort(port int) *Builder {
	b.port = port
	return b
}

// Use 使用全局中间件
func (b *Builder) Use(middleware ...gin.HandlerFunc) *Builder {
	b.engine.Use(middleware...)
	return b
}

// AddControllers 注册控制器
func (b *Builder) AddControllers(controllers ...Controller) *Builder {
	b.controllers = append(b.controllers, controllers...)
	return b
}

func (b *Builder) mount() {
	if b.mounted {
		return
	}
	b.mounted = true

	for _, controller := range b.controllers {
		controller.MountRoutes(b.engine)
	}
	b.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Build 挂载路由并构建可托管的 HTTP 服务
func (b *Builder) Build() *Server {
	b.mount()

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", b.port),
			Handler: b.engine,
		},
		logger: b.logger,
	}
}

// Engine 返回挂载完成的 Gin 引擎（测试用）
func (b *Builder) Engine() *gin.Engine {
	b.mount()
	return b.engine
}

// Server HTTP 托管服务
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// Start 实现 hosting.HostedService，阻塞直到服务器关闭
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("HTTP server listening",
		logging.Field{Key: "addr", Value: s.httpServer.Addr})

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Stop 优雅关闭 HTTP 服务器
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	shutdownCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	return s.httpServer.Shutdown(shutdownCtx)
}
