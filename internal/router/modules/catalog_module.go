package modules

import (
	"github.com/gin-gonic/gin"

	handlers "gomarket/internal/interface/http"
	"gomarket/internal/interface/middleware"
	"gomarket/pkg/helpers"
)

// CatalogModule wires the product catalog.
// Public: GET /products/, GET /products/search, GET /products/top.
// Protected: POST /products/.
type CatalogModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/products/", m.Handler.List)
	rg.GET("/products/search", m.Handler.Search)
	rg.GET("/products/top", m.Handler.Top)

	rg.POST("/products/", middleware.Auth(m.JWT), m.Handler.Create)
}
