package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RootModule serves the banner and the liveness probe.
type RootModule struct {
	AppName string
	Pool    *pgxpool.Pool
}

func NewRootModule(appName string, pool *pgxpool.Pool) *RootModule {
	return &RootModule{AppName: appName, Pool: pool}
}

func (m *RootModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "welcome to the %s API", m.AppName)
	})

	rg.GET("/healthz", func(c *gin.Context) {
		if m.Pool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := m.Pool.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
