package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"gomarket/internal/container"
	handlers "gomarket/internal/interface/http"
	"gomarket/internal/interface/middleware"
)

// AuthModule wires registration and login.
// Public: POST /users/, POST /login/ — both rate limited per IP and path.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/users/", registerLimiter, m.Handler.Register)
	rg.POST("/login/", loginLimiter, m.Handler.Login)
}
