package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"gorm.io/gorm"
)

// JobService 工单管理服务接口
// 覆盖工单的 CSV 导入建单、列表、进度、更新、删除和任务导出
type JobService interface {
	CreateJobFromCSV(ctx context.Context, req *CreateJobRequest, csvFile io.Reader) (*model.Job, error)
	ListJobs(ctx context.Context) ([]*repository.JobWithLanguages, error)
	GetJob(ctx context.Context, jobID uint) (*model.Job, error)
	GetJobProgress(ctx context.Context, jobID uint) (*JobProgress, error)
	UpdateJob(ctx context.Context, jobID uint, req *UpdateJobRequest) (*model.Job, error)
	DeleteJob(ctx context.Context, jobID uint) error
	ExportTasksCSV(ctx context.Context, jobID uint) (string, []byte, error)
}

// CreateJobRequest 建单请求,随 multipart 表单提交
type CreateJobRequest struct {
	JobTitle         string  `form:"job_title" binding:"required"`
	SourceLanguageID uint    `form:"source_language_id" binding:"required"`
	TargetLanguageID uint    `form:"target_language_id" binding:"required"`
	MaxTimePerTask   int     `form:"max_time_per_task"`
	TaskPrice        float64 `form:"task_price"`
	Instructions     string  `form:"instructions" binding:"required"`
	Notes            string  `form:"notes"`
}

// UpdateJobRequest 工单更新请求,仅允许改元信息,不触碰已拆分的任务
type UpdateJobRequest struct {
	JobTitle     *string  `json:"job_title"`
	JobStatus    *string  `json:"job_status"`
	TaskPrice    *float64 `json:"task_price"`
	Instructions *string  `json:"instructions"`
	Notes        *string  `json:"notes"`
}

// JobProgress 工单进度快照,按任务状态分桶
type JobProgress struct {
	JobID         uint  `json:"job_id"`
	TotalTasks    int64 `json:"total_tasks"`
	OpenTasks     int64 `json:"open_tasks"`
	AssignedTasks int64 `json:"assigned_tasks"`
	UnderReview   int64 `json:"under_review_tasks"`
	CompleteTasks int64 `json:"complete_tasks"`
}

// jobService 工单管理服务实现
type jobService struct {
	jobRepo      repository.JobRepository
	taskRepo     repository.TaskRepository
	languageRepo repository.LanguageRepository
	now          func() time.Time
}

// NewJobService 创建工单管理服务
func NewJobService(jobRepo repository.JobRepository, taskRepo repository.TaskRepository, languageRepo repository.LanguageRepository) JobService {
	return &jobService{
		jobRepo:      jobRepo,
		taskRepo:     taskRepo,
		languageRepo: languageRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateJobFromCSV 从 CSV 源文件建单
// CSV 每行第一列是一条待翻译的源文本,没有表头;
// 空行和首列空白的行跳过。工单与任务在同一事务内落库
func (s *jobService) CreateJobFromCSV(ctx context.Context, req *CreateJobRequest, csvFile io.Reader) (*model.Job, error) {
	if _, err := s.languageRepo.FindByID(req.SourceLanguageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to load source language: %w", err)
	}
	if _, err := s.languageRepo.FindByID(req.TargetLanguageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to load target language: %w", err)
	}

	sourceTexts, err := readSourceTexts(csvFile)
	if err != nil {
		return nil, err
	}
	if len(sourceTexts) == 0 {
		return nil, fmt.Errorf("csv file contains no source texts")
	}

	maxTime := req.MaxTimePerTask
	if maxTime <= 0 {
		maxTime = 10
	}

	job := &model.Job{
		JobTitle:         req.JobTitle,
		SourceLanguageID: req.SourceLanguageID,
		TargetLanguageID: req.TargetLanguageID,
		JobStatus:        model.JobStatusInProgress,
		MaxTimePerTask:   maxTime,
		CreatedAt:        s.now(),
		TaskPrice:        req.TaskPrice,
		Instructions:     req.Instructions,
		Notes:            req.Notes,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.CreateWithTasks(job, sourceTexts); err != nil {
		return nil, fmt.Errorf("failed to create job with tasks: %w", err)
	}
	return job, nil
}

// readSourceTexts 读取导入 CSV 的首列文本
func readSourceTexts(csvFile io.Reader) ([]string, error) {
	reader := csv.NewReader(csvFile)
	reader.FieldsPerRecord = -1

	var texts []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		text := strings.TrimSpace(record[0])
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// ListJobs 按创建顺序列出所有工单
func (s *jobService) ListJobs(ctx context.Context) ([]*repository.JobWithLanguages, error) {
	return s.jobRepo.FindAll()
}

// GetJob 查询单个工单
func (s *jobService) GetJob(ctx context.Context, jobID uint) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	return job, nil
}

// GetJobProgress 统计工单各状态任务数
func (s *jobService) GetJobProgress(ctx context.Context, jobID uint) (*JobProgress, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	total, err := s.taskRepo.CountByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	progress := &JobProgress{JobID: jobID, TotalTasks: total}
	counts := []struct {
		status model.TaskStatus
		dest   *int64
	}{
		{model.TaskStatusOpen, &progress.OpenTasks},
		{model.TaskStatusAssignedToFL, &progress.AssignedTasks},
		{model.TaskStatusUnderReview, &progress.UnderReview},
		{model.TaskStatusComplete, &progress.CompleteTasks},
	}
	for _, c := range counts {
		n, err := s.taskRepo.CountByJobAndStatus(jobID, c.status)
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks by status: %w", err)
		}
		*c.dest = n
	}
	return progress, nil
}

// UpdateJob 更新工单元信息
func (s *jobService) UpdateJob(ctx context.Context, jobID uint, req *UpdateJobRequest) (*model.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.JobStatus != nil {
		status := model.JobStatus(*req.JobStatus)
		switch status {
		case model.JobStatusInProgress, model.JobStatusCompleted, model.JobStatusClosed:
			job.JobStatus = status
		default:
			return nil, fmt.Errorf("invalid job status: %s", *req.JobStatus)
		}
	}
	if req.TaskPrice != nil {
		job.TaskPrice = *req.TaskPrice
	}
	if req.Instructions != nil {
		job.Instructions = *req.Instructions
	}
	if req.Notes != nil {
		job.Notes = *req.Notes
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob 删除工单及其全部任务
func (s *jobService) DeleteJob(ctx context.Context, jobID uint) error {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// ExportTasksCSV 导出工单任务为 CSV
// 表头带两侧语言名,译文为空的任务导出空单元格。
// 返回建议文件名和文件内容
func (s *jobService) ExportTasksCSV(ctx context.Context, jobID uint) (string, []byte, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return "", nil, err
	}

	sourceLanguage, err := s.languageRepo.FindByID(job.SourceLanguageID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load source language: %w", err)
	}
	targetLanguage, err := s.languageRepo.FindByID(job.TargetLanguageID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load target language: %w", err)
	}

	tasks, err := s.taskRepo.FindByJob(jobID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	header := []string{"task_id", sourceLanguage.LanguageName, targetLanguage.LanguageName, "status"}
	if err := writer.Write(header); err != nil {
		return "", nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, task := range tasks {
		translated := ""
		if task.TranslatedText != nil {
			translated = *task.TranslatedText
		}
		row := []string{
			fmt.Sprintf("%d", task.TaskID),
			task.SourceText,
			translated,
			string(task.TaskStatus),
		}
		if err := writer.Write(row); err != nil {
			return "", nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("job_%d_tasks.csv", jobID)
	return filename, buf.Bytes(), nil
}
