package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// ReviewController QA 审核控制器
type ReviewController struct {
	reviewService service.ReviewService
}

// NewReviewController 创建 QA 审核控制器
func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// NextTask 认领一个待审核任务
// 审核员不存在是调用方错误,返回 400;队列为空返回 200 和提示消息
func (c *ReviewController) NextTask(ctx *gin.Context) {
	var req service.ClaimReviewRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	resp, err := c.reviewService.ClaimReviewTask(ctx.Request.Context(), &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to claim review task", err.Error())
		return
	}
	if resp == nil {
		SuccessMessage(ctx, "no tasks awaiting review for this language pair", nil)
		return
	}

	Success(ctx, resp)
}

// SubmitReview 提交审核决定
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	var req service.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	message, err := c.reviewService.SubmitReview(ctx.Request.Context(), &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to submit review", err.Error())
		return
	}

	SuccessMessage(ctx, message, nil)
}
