package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillyst/internal/api/middleware"
	"skillyst/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎，挂载通用中间件、健康检查和指标端点。
func NewRouter(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger, "/health", "/metrics"),
		metrics.GinMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	metrics.Mount(router)

	return router
}
