package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
)

// JobController 工单管理控制器
type JobController struct {
	jobService service.JobService
}

// NewJobController 创建工单管理控制器
func NewJobController(jobService service.JobService) *JobController {
	return &JobController{
		jobService: jobService,
	}
}

// parseJobID 解析路径中的工单 ID
func (c *JobController) parseJobID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid job ID", err.Error())
		return 0, false
	}
	return uint(id), true
}

// Create 创建工单
// multipart 表单: 工单元信息 + CSV 源文件,每行首列一条源文本
func (c *JobController) Create(ctx *gin.Context) {
	var req service.CreateJobRequest
	if err := ctx.ShouldBind(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		Error(ctx, http.StatusBadRequest, "csv file is required", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to open csv file", err.Error())
		return
	}
	defer file.Close()

	job, err := c.jobService.CreateJobFromCSV(ctx.Request.Context(), &req, file)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to create job", err.Error())
		return
	}

	Success(ctx, job)
}

// List 列出所有工单
func (c *JobController) List(ctx *gin.Context) {
	jobs, err := c.jobService.ListJobs(ctx.Request.Context())
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list jobs", err.Error())
		return
	}

	Success(ctx, jobs)
}

// Get 获取工单详情
func (c *JobController) Get(ctx *gin.Context) {
	id, ok := c.parseJobID(ctx)
	if !ok {
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to get job", err.Error())
		return
	}

	Success(ctx, job)
}

// Progress 获取工单进度
func (c *JobController) Progress(ctx *gin.Context) {
	id, ok := c.parseJobID(ctx)
	if !ok {
		return
	}

	progress, err := c.jobService.GetJobProgress(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to get job progress", err.Error())
		return
	}

	Success(ctx, progress)
}

// Update 更新工单元信息
func (c *JobController) Update(ctx *gin.Context) {
	id, ok := c.parseJobID(ctx)
	if !ok {
		return
	}

	var req service.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	job, err := c.jobService.UpdateJob(ctx.Request.Context(), id, &req)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to update job", err.Error())
		return
	}

	Success(ctx, job)
}

// Delete 删除工单及其任务
func (c *JobController) Delete(ctx *gin.Context) {
	id, ok := c.parseJobID(ctx)
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), id); err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to delete job", err.Error())
		return
	}

	SuccessMessage(ctx, "job deleted", nil)
}

// ExportCSV 导出工单任务为 CSV 文件
func (c *JobController) ExportCSV(ctx *gin.Context) {
	id, ok := c.parseJobID(ctx)
	if !ok {
		return
	}

	filename, content, err := c.jobService.ExportTasksCSV(ctx.Request.Context(), id)
	if err != nil {
		Error(ctx, serviceErrorStatus(err), "failed to export tasks", err.Error())
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "text/csv", content)
}
