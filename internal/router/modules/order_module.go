package modules

import (
	"github.com/gin-gonic/gin"

	handlers "gomarket/internal/interface/http"
	"gomarket/internal/interface/middleware"
	"gomarket/pkg/helpers"
)

// OrderModule wires order placement and listing; every route is privileged.
type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.Auth(m.JWT))
	{
		orders.POST("/", m.Handler.Place)
		orders.GET("/", m.Handler.List)
	}
}
