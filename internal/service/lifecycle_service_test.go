package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDBForLifecycle 创建测试数据库
func setupTestDBForLifecycle(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

// seedLifecycleFixtures 写入语言、译员和一个带任务的工单
func seedLifecycleFixtures(t *testing.T, db *gorm.DB, taskCount int) *model.Job {
	require.NoError(t, db.Create(&model.Language{LanguageName: "Burmese"}).Error)
	require.NoError(t, db.Create(&model.Language{LanguageName: "English"}).Error)
	require.NoError(t, db.Create(&model.Freelancer{FullName: "Aung Aung", Email: "aung@example.com"}).Error)
	require.NoError(t, db.Create(&model.Freelancer{FullName: "Su Su", Email: "susu@example.com"}).Error)

	job := &model.Job{
		JobTitle:         "News batch",
		SourceLanguageID: 1,
		TargetLanguageID: 2,
		JobStatus:        model.JobStatusInProgress,
		MaxTimePerTask:   10,
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
		TaskPrice:        0.5,
		Instructions:     "Translate naturally",
	}
	require.NoError(t, db.Create(job).Error)

	for i := 0; i < taskCount; i++ {
		require.NoError(t, db.Create(&model.Task{
			JobID:            job.JobID,
			SourceLanguageID: 1,
			TargetLanguageID: 2,
			SourceText:       "source text",
			MaxTimePerTask:   job.MaxTimePerTask,
			TaskPrice:        job.TaskPrice,
			TaskStatus:       model.TaskStatusOpen,
		}).Error)
	}
	return job
}

// newLifecycleService 基于测试数据库构建服务
func newLifecycleService(db *gorm.DB) service.LifecycleService {
	return service.NewLifecycleService(repository.NewTaskRepository(db), db, nil)
}

// TestClaimThenSubmit 测试认领后按时提交的完整流程
func TestClaimThenSubmit(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 1)
	svc := newLifecycleService(db)
	ctx := context.Background()

	detail, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Translate naturally", detail.Instruction)
	assert.Equal(t, "Burmese", detail.SourceLanguageName)
	assert.Equal(t, "English", detail.TargetLanguageName)

	resp, err := svc.SubmitTask(ctx, &service.SubmitTaskRequest{
		FreelancerID: 1, TaskID: detail.TaskID, TranslatedText: "translated",
	})
	require.NoError(t, err)
	assert.False(t, resp.Expired)
	assert.Equal(t, "Task submitted successfully", resp.Message)

	var task model.Task
	require.NoError(t, db.First(&task, "task_id = ?", detail.TaskID).Error)
	assert.Equal(t, model.TaskStatusUnderReview, task.TaskStatus)
	require.NotNil(t, task.TranslatedText)
	assert.Equal(t, "translated", *task.TranslatedText)
	require.NotNil(t, task.SubmittedByID)
	assert.Equal(t, uint(1), *task.SubmittedByID)
	require.NotNil(t, task.SubmittedAt)
}

// TestClaimOpenTask_QueueEmpty 测试队列为空时返回 nil 而非错误
func TestClaimOpenTask_QueueEmpty(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 0)
	svc := newLifecycleService(db)

	detail, err := svc.ClaimOpenTask(context.Background(), &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, detail)
}

// TestClaimOpenTask_Sequential 测试两次认领拿到不同任务
func TestClaimOpenTask_Sequential(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 2)
	svc := newLifecycleService(db)
	ctx := context.Background()

	first, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 2, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.TaskID, second.TaskID)

	third, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, third, "both tasks already claimed")
}

// TestSubmitTask_NotOwner 测试非认领人提交被拒
func TestSubmitTask_NotOwner(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 1)
	svc := newLifecycleService(db)
	ctx := context.Background()

	detail, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, detail)

	_, err = svc.SubmitTask(ctx, &service.SubmitTaskRequest{
		FreelancerID: 2, TaskID: detail.TaskID, TranslatedText: "stolen",
	})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

// TestSubmitTask_UnknownTask 测试不存在的任务提交被拒
func TestSubmitTask_UnknownTask(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 0)
	svc := newLifecycleService(db)

	_, err := svc.SubmitTask(context.Background(), &service.SubmitTaskRequest{
		FreelancerID: 1, TaskID: 999, TranslatedText: "text",
	})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

// TestSubmitTask_Expired 测试超时提交: 任务回到 OPEN,译文不落库
func TestSubmitTask_Expired(t *testing.T) {
	db := setupTestDBForLifecycle(t)
	seedLifecycleFixtures(t, db, 1)
	svc := newLifecycleService(db)
	ctx := context.Background()

	detail, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, detail)

	// 把认领时间改到超时窗口之外
	staleAt := time.Now().UTC().Truncate(time.Second).Add(-15 * time.Minute)
	require.NoError(t, db.Model(&model.Task{}).
		Where("task_id = ?", detail.TaskID).
		Update("assigned_at", staleAt).Error)

	resp, err := svc.SubmitTask(ctx, &service.SubmitTaskRequest{
		FreelancerID: 1, TaskID: detail.TaskID, TranslatedText: "too late",
	})
	require.NoError(t, err)
	assert.True(t, resp.Expired)
	assert.Equal(t, "Time to complete the task has expired", resp.Message)

	var task model.Task
	require.NoError(t, db.First(&task, "task_id = ?", detail.TaskID).Error)
	assert.Equal(t, model.TaskStatusOpen, task.TaskStatus)
	assert.Nil(t, task.TranslatedText, "late translation must not be persisted")
	assert.Nil(t, task.SubmittedByID)
	// 认领字段保留备查
	assert.NotNil(t, task.AssignedFreelancerID)
	assert.NotNil(t, task.AssignedAt)

	// 回到 OPEN 后可被其他译员认领
	reclaimed, err := svc.ClaimOpenTask(ctx, &service.ClaimTaskRequest{
		FreelancerID: 2, SourceLanguageID: 1, TargetLanguageID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, reclaimed)
	assert.Equal(t, detail.TaskID, reclaimed.TaskID)
}
