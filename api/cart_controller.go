package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/shop/core/services"
	"github.com/gocrud/shop/wiring"
)

// CartController 购物车接口。
// 服务在每个请求内通过工厂装配，携带请求作用域的数据库句柄。
type CartController struct {
	factory   *wiring.Factory
	resources ResourceSet
}

// NewCartController 创建购物车控制器
func NewCartController(factory *wiring.Factory, resources ResourceSet) *CartController {
	return &CartController{factory: factory, resources: resources}
}

// MountRoutes 注册购物车路由
func (ctl *CartController) MountRoutes(router gin.IRouter) {
	group := router.Group("/users/:user_id/cart")
	group.GET("", ctl.getCart)
	group.POST("/items", ctl.addItem)
	group.DELETE("/items/:product_id", ctl.removeItem)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	UnitPrice int64  `json:"unit_price" binding:"min=0"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (ctl *CartController) service(c *gin.Context) (*services.CartService, bool) {
	svc, err := wiring.Create[*services.CartService](ctl.factory, ctl.resources.PerRequest(c.Request.Context()))
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return svc, true
}

func (ctl *CartController) getCart(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	cart, err := svc.GetCart(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, cart)
}

func (ctl *CartController) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	cart, err := svc.AddItem(c.Request.Context(), c.Param("user_id"), req.ProductID, req.UnitPrice, req.Quantity)
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, cart)
}

func (ctl *CartController) removeItem(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	cart, err := svc.RemoveItem(c.Request.Context(), c.Param("user_id"), c.Param("product_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, cart)
}
