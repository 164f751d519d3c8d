package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/repositories"
	"github.com/gocrud/shop/core/services"
)

// Response 统一 API 回应格式。
// 所有端点都使用此信封，前端可统一处理。
type Response struct {
	Success   bool      `json:"success"`
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK 写入成功回应
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Code:      http.StatusOK,
		Message:   "ok",
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Created 写入资源创建成功回应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Code:      http.StatusCreated,
		Message:   "created",
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Fail 写入错误回应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success:   false,
		Code:      status,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// FailFromError 按错误类别写入回应。
// 领域校验错误映射为 400，未找到映射为 404；
// 装配错误属于服务端配置缺陷，同其他未知错误一律 500，绝不 4xx。
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrQuantityNotPositive),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrOrderNotPending),
		errors.Is(err, domain.ErrOrderNotCancellable),
		errors.Is(err, services.ErrCartEmpty):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
