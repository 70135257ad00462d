package proxy

import (
	"sentrywatch/src/modules/auth"

	"github.com/gin-gonic/gin"
)

type Route struct {
	controller *Controller
	middleware *auth.MiddlewareProvider
}

func NewRoute(controller *Controller, middleware *auth.MiddlewareProvider) *Route {
	return &Route{
		controller: controller,
		middleware: middleware,
	}
}

func (r *Route) ConnectRoute(rg *gin.RouterGroup, controller *Controller) {
	router := rg.Group("proxies")
	router.Use(r.middleware.Auth())

	router.GET("", r.controller.FindAll)
	router.POST("", r.controller.Create)
	router.GET(":id", r.controller.FindByID)
	router.PUT(":id", r.controller.UpdateFull)
	router.PATCH(":id", r.controller.UpdatePartial)
	router.DELETE(":id", r.controller.Delete)
}
