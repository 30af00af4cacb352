package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// StatisticsController 队列统计控制器
type StatisticsController struct {
	statisticsService service.StatisticsService
}

// NewStatisticsController 创建队列统计控制器
func NewStatisticsController(statisticsService service.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

// QueueStats 获取队列统计
func (c *StatisticsController) QueueStats(ctx *gin.Context) {
	stats, err := c.statisticsService.GetQueueStats(ctx.Request.Context())
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get queue stats", err.Error())
		return
	}

	Success(ctx, stats)
}
