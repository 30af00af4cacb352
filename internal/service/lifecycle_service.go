package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/metrics"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"github.com/itsakphyo/myanlang-translation-platform/internal/websocket"
	"gorm.io/gorm"
)

// LifecycleService 任务生命周期服务接口
// 管理译员侧的状态机: OPEN → ASSIGNED_TO_FL → UNDER_REVIEW,
// 超时提交回退到 OPEN。认领超时没有后台清扫,只在下次认领或提交时惰性检测
type LifecycleService interface {
	ClaimOpenTask(ctx context.Context, req *ClaimTaskRequest) (*repository.OpenTaskDetail, error)
	SubmitTask(ctx context.Context, req *SubmitTaskRequest) (*SubmitTaskResponse, error)
}

// ClaimTaskRequest 认领任务请求
type ClaimTaskRequest struct {
	FreelancerID     uint `form:"freelancer_id" binding:"required"`     // 译员 ID
	SourceLanguageID uint `form:"source_language_id" binding:"required"` // 源语言 ID
	TargetLanguageID uint `form:"target_language_id" binding:"required"` // 目标语言 ID
}

// SubmitTaskRequest 提交译文请求
type SubmitTaskRequest struct {
	FreelancerID   uint   `json:"freelancer_id" binding:"required"` // 译员 ID
	TaskID         uint   `json:"task_id" binding:"required"`       // 任务 ID
	TranslatedText string `json:"translated_text" binding:"required"` // 译文
}

// SubmitTaskResponse 提交译文响应
// 超时也是正常业务结果,通过 message 传达而不是错误
type SubmitTaskResponse struct {
	Message string `json:"message"`
	Expired bool   `json:"expired"`
}

// lifecycleService 任务生命周期服务实现
type lifecycleService struct {
	taskRepo repository.TaskRepository
	db       *gorm.DB
	hub      *websocket.Hub
	now      func() time.Time
}

// NewLifecycleService 创建任务生命周期服务
// hub 可为 nil,此时不推送队列事件
func NewLifecycleService(taskRepo repository.TaskRepository, db *gorm.DB, hub *websocket.Hub) LifecycleService {
	return &lifecycleService{
		taskRepo: taskRepo,
		db:       db,
		hub:      hub,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ClaimOpenTask 认领一个可领任务
// 选取与取锁在仓储层的同一事务内完成;没有可领任务返回 nil, nil
func (s *lifecycleService) ClaimOpenTask(ctx context.Context, req *ClaimTaskRequest) (*repository.OpenTaskDetail, error) {
	task, err := s.taskRepo.ClaimOpenTask(req.FreelancerID, req.SourceLanguageID, req.TargetLanguageID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}
	if task == nil {
		return nil, nil
	}

	detail, err := s.taskRepo.FindOpenTaskDetail(task.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task detail: %w", err)
	}

	metrics.RecordTaskClaimed()
	s.broadcast("task_claimed", task)

	return detail, nil
}

// SubmitTask 提交译文
// 超时的提交不落库译文,任务回到 OPEN 重新进入可领池;
// 认领后未被重新认领的过期任务仍可被原译员触达,由这里的超时检查拦下
func (s *lifecycleService) SubmitTask(ctx context.Context, req *SubmitTaskRequest) (*SubmitTaskResponse, error) {
	now := s.now()
	var resp *SubmitTaskResponse
	var submitted model.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task model.Task
		err := tx.
			Where("task_id = ? AND assigned_freelancer_id = ? AND task_status = ?",
				req.TaskID, req.FreelancerID, model.TaskStatusAssignedToFL).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}

		if task.AssignedAt == nil {
			return ErrNoAssignmentTime
		}

		elapsed := now.Sub(task.AssignedAt.UTC()).Minutes()
		if elapsed > float64(task.MaxTimePerTask) {
			// 认领作废: 状态回到 OPEN,认领字段保留备查
			err := tx.Model(&model.Task{}).
				Where("task_id = ? AND task_status = ?", task.TaskID, model.TaskStatusAssignedToFL).
				Update("task_status", model.TaskStatusOpen).Error
			if err != nil {
				return fmt.Errorf("failed to release expired task: %w", err)
			}
			task.TaskStatus = model.TaskStatusOpen
			submitted = task
			resp = &SubmitTaskResponse{Message: "Time to complete the task has expired", Expired: true}
			return nil
		}

		updates := map[string]interface{}{
			"translated_text": req.TranslatedText,
			"submitted_by_id": req.FreelancerID,
			"submitted_at":    now,
			"task_status":     model.TaskStatusUnderReview,
		}
		err = tx.Model(&model.Task{}).
			Where("task_id = ? AND assigned_freelancer_id = ? AND task_status = ?",
				task.TaskID, req.FreelancerID, model.TaskStatusAssignedToFL).
			Updates(updates).Error
		if err != nil {
			return fmt.Errorf("failed to submit task: %w", err)
		}
		task.TaskStatus = model.TaskStatusUnderReview
		submitted = task
		resp = &SubmitTaskResponse{Message: "Task submitted successfully"}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Expired {
		metrics.RecordTaskSubmission("expired")
		s.broadcast("task_expired", &submitted)
	} else {
		metrics.RecordTaskSubmission("submitted")
		s.broadcast("task_submitted", &submitted)
	}

	return resp, nil
}

// broadcast 推送任务事件到队列动态
func (s *lifecycleService) broadcast(eventType string, task *model.Task) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastTaskEvent(websocket.TaskEvent{
		Type:             eventType,
		TaskID:           task.TaskID,
		Status:           string(task.TaskStatus),
		SourceLanguageID: task.SourceLanguageID,
		TargetLanguageID: task.TargetLanguageID,
		At:               s.now(),
	})
}
