package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/shop/core/domain"
	"github.com/gocrud/shop/core/services"
	"github.com/gocrud/shop/wiring"
)

// OrderController 订单接口
type OrderController struct {
	factory   *wiring.Factory
	resources ResourceSet
}

// NewOrderController 创建订单控制器
func NewOrderController(factory *wiring.Factory, resources ResourceSet) *OrderController {
	return &OrderController{factory: factory, resources: resources}
}

// MountRoutes 注册订单路由
func (ctl *OrderController) MountRoutes(router gin.IRouter) {
	group := router.Group("/users/:user_id/orders")
	group.POST("/checkout", ctl.checkout)
	group.GET("", ctl.listOrders)

	orders := router.Group("/orders")
	orders.GET("/:order_id", ctl.getOrder)
	orders.POST("/:order_id/cancel", ctl.cancelOrder)
}

type checkoutRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (ctl *OrderController) service(c *gin.Context) (*services.OrderService, bool) {
	svc, err := wiring.Create[*services.OrderService](ctl.factory, ctl.resources.PerRequest(c.Request.Context()))
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return svc, true
}

func (ctl *OrderController) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	order, err := svc.Checkout(c.Request.Context(), c.Param("user_id"), domain.ShippingAddress{
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		FailFromError(c, err)
		return
	}
	Created(c, order)
}

func (ctl *OrderController) listOrders(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	orders, err := svc.ListOrders(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, orders)
}

func (ctl *OrderController) getOrder(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	order, err := svc.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, order)
}

func (ctl *OrderController) cancelOrder(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	order, err := svc.CancelOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, order)
}
