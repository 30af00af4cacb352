package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// TaskController 任务生命周期控制器
// 面向译员: 认领可领任务、提交译文
type TaskController struct {
	lifecycleService service.LifecycleService
}

// NewTaskController 创建任务生命周期控制器
func NewTaskController(lifecycleService service.LifecycleService) *TaskController {
	return &TaskController{
		lifecycleService: lifecycleService,
	}
}

// OpenTask 认领一个可翻译任务
// 没有可领任务不是错误,返回 200 和提示消息
func (c *TaskController) OpenTask(ctx *gin.Context) {
	var req service.ClaimTaskRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	detail, err := c.lifecycleService.ClaimOpenTask(ctx.Request.Context(), &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to claim task", err.Error())
		return
	}
	if detail == nil {
		SuccessMessage(ctx, "no open tasks available for this language pair", nil)
		return
	}

	Success(ctx, detail)
}

// SubmitTask 提交译文
// 超时提交不报错: 任务回到 OPEN,返回 200 和超时消息,译文不落库
func (c *TaskController) SubmitTask(ctx *gin.Context) {
	var req service.SubmitTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	resp, err := c.lifecycleService.SubmitTask(ctx.Request.Context(), &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to submit task", err.Error())
		return
	}

	SuccessMessage(ctx, resp.Message, gin.H{"expired": resp.Expired})
}
