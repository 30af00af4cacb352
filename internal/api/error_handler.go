package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// serviceErrorStatus 服务层哨兵错误到 HTTP 状态码的映射
// 未识别的错误一律 500
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrFreelancerNotFound),
		errors.Is(err, service.ErrLanguageNotFound),
		errors.Is(err, service.ErrLanguagePairNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrQAMemberNotFound),
		errors.Is(err, service.ErrNoAssignmentTime):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
