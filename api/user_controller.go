package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/shop/core/services"
	"github.com/gocrud/shop/wiring"
)

// UserController 用户接口
type UserController struct {
	factory   *wiring.Factory
	resources ResourceSet
}

// NewUserController 创建用户控制器
func NewUserController(factory *wiring.Factory, resources ResourceSet) *UserController {
	return &UserController{factory: factory, resources: resources}
}

// MountRoutes 注册用户路由
func (ctl *UserController) MountRoutes(router gin.IRouter) {
	group := router.Group("/users")
	group.POST("", ctl.register)
	group.GET("/:user_id", ctl.getUser)
}

type registerRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

func (ctl *UserController) service(c *gin.Context) (*services.UserService, bool) {
	svc, err := wiring.Create[*services.UserService](ctl.factory, ctl.resources.PerRequest(c.Request.Context()))
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return svc, true
}

func (ctl *UserController) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	user, err := svc.Register(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		FailFromError(c, err)
		return
	}
	Created(c, user)
}

func (ctl *UserController) getUser(c *gin.Context) {
	svc, ok := ctl.service(c)
	if !ok {
		return
	}

	user, err := svc.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	OK(c, user)
}
