package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// FreelancerController 译员台账控制器
type FreelancerController struct {
	ledgerService service.LedgerService
}

// NewFreelancerController 创建译员台账控制器
func NewFreelancerController(ledgerService service.LedgerService) *FreelancerController {
	return &FreelancerController{
		ledgerService: ledgerService,
	}
}

// parseFreelancerID 解析路径中的译员 ID
func (c *FreelancerController) parseFreelancerID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid freelancer ID", err.Error())
		return 0, false
	}
	return uint(id), true
}

// LanguagePairStanding 查询译员在某语言对上的资格
// 查询不区分语言对的方向。没有记录返回 200 和 status=not_found
func (c *FreelancerController) LanguagePairStanding(ctx *gin.Context) {
	var req service.LanguagePairStandingRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	standing, err := c.ledgerService.GetLanguagePairStanding(ctx.Request.Context(), &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to get language pair", err.Error())
		return
	}
	if !standing.Found {
		Success(ctx, gin.H{"status": "not_found"})
		return
	}

	Success(ctx, standing)
}

// ListLanguagePairs 列出译员的全部语言对记录
func (c *FreelancerController) ListLanguagePairs(ctx *gin.Context) {
	id, ok := c.parseFreelancerID(ctx)
	if !ok {
		return
	}

	pairs, err := c.ledgerService.ListLanguagePairs(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to list language pairs", err.Error())
		return
	}

	Success(ctx, pairs)
}

// Balance 查询译员余额
func (c *FreelancerController) Balance(ctx *gin.Context) {
	id, ok := c.parseFreelancerID(ctx)
	if !ok {
		return
	}

	balance, err := c.ledgerService.GetBalance(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to get balance", err.Error())
		return
	}

	Success(ctx, balance)
}
