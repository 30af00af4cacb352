package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RequestLogMiddleware 请求日志中间件
// 每个请求落一条结构化日志,同时喂给 Prometheus 请求指标
func RequestLogMiddleware() gin.HandlerFunc {
	logger := GetLogger()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path

		metrics.RecordAPIRequest(method, path, status, elapsed.Seconds())

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     method,
			"path":       path,
			"status":     status,
			"latency":    elapsed.String(),
			"ip":         c.ClientIP(),
		})

		// 服务端错误升到 error,客户端错误 warn
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
