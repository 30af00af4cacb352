package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware 全局令牌桶限流
// rps 为稳态速率,burst 为突发容量,超限请求直接以 429 拒绝
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	bucket := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if bucket.Allow() {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
			Code:    http.StatusTooManyRequests,
			Message: "too many requests",
		})
	}
}
