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

// ReviewService QA 审核服务接口
// 管理审核侧的状态机与记分: UNDER_REVIEW → COMPLETE (通过) 或回到全新 OPEN (驳回)
type ReviewService interface {
	ClaimReviewTask(ctx context.Context, req *ClaimReviewRequest) (*ReviewTaskResponse, error)
	SubmitReview(ctx context.Context, req *SubmitReviewRequest) (string, error)
}

// ClaimReviewRequest QA 认领请求
type ClaimReviewRequest struct {
	QAID             uint `form:"qa_id" binding:"required"`              // QA 审核员 ID
	SourceLanguageID uint `form:"source_language_id" binding:"required"` // 源语言 ID
	TargetLanguageID uint `form:"target_language_id" binding:"required"` // 目标语言 ID
}

// ReviewTaskResponse QA 认领响应
type ReviewTaskResponse struct {
	Task               *model.Task `json:"task"`
	SourceLanguageName string      `json:"source_language_name"`
	TargetLanguageName string      `json:"target_language_name"`
}

// SubmitReviewRequest QA 审核提交请求
type SubmitReviewRequest struct {
	TaskID   uint  `json:"task_id" binding:"required"` // 任务 ID
	QAID     uint  `json:"qa_id" binding:"required"`   // QA 审核员 ID
	Decision *bool `json:"decision" binding:"required"` // true 通过, false 驳回
}

// reviewService QA 审核服务实现
type reviewService struct {
	taskRepo     repository.TaskRepository
	qaRepo       repository.QAMemberRepository
	languageRepo repository.LanguageRepository
	db           *gorm.DB
	hub          *websocket.Hub
	now          func() time.Time
}

// NewReviewService 创建 QA 审核服务
// hub 可为 nil,此时不推送队列事件
func NewReviewService(
	taskRepo repository.TaskRepository,
	qaRepo repository.QAMemberRepository,
	languageRepo repository.LanguageRepository,
	db *gorm.DB,
	hub *websocket.Hub,
) ReviewService {
	return &reviewService{
		taskRepo:     taskRepo,
		qaRepo:       qaRepo,
		languageRepo: languageRepo,
		db:           db,
		hub:          hub,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ClaimReviewTask 认领一个待审核任务
// QA 审核员必须存在;没有可领任务返回 nil, nil。
// QA 认领没有超时回收,审核员弃审会让任务滞留,这是既有设计的已知局限
func (s *reviewService) ClaimReviewTask(ctx context.Context, req *ClaimReviewRequest) (*ReviewTaskResponse, error) {
	if _, err := s.qaRepo.FindByID(req.QAID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQAMemberNotFound
		}
		return nil, fmt.Errorf("failed to load qa member: %w", err)
	}

	task, err := s.taskRepo.ClaimReviewTask(req.QAID, req.SourceLanguageID, req.TargetLanguageID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim review task: %w", err)
	}
	if task == nil {
		return nil, nil
	}

	sourceLanguage, err := s.languageRepo.FindByID(task.SourceLanguageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source language: %w", err)
	}
	targetLanguage, err := s.languageRepo.FindByID(task.TargetLanguageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target language: %w", err)
	}

	metrics.RecordReviewClaimed()

	return &ReviewTaskResponse{
		Task:               task,
		SourceLanguageName: sourceLanguage.LanguageName,
		TargetLanguageName: targetLanguage.LanguageName,
	}, nil
}

// SubmitReview 提交审核决定
// 整个决定在一个事务内落库,外部观察不到中间状态:
//   - 审核员 total_tasks_reviewed 总是 +1
//   - 通过: 任务 COMPLETE,译员入账 task_price,语言对 complete_task +1,
//     accuracy_rate = ((C+1)-R)/(C+1)*100
//   - 驳回: 任务完全重置为全新 OPEN,审核员 total_tasks_rejected +1,
//     语言对 complete_task 和 rejected_task 各 +1,
//     accuracy_rate = ((C+1)-(R+1))/(C+1)*100
//
// 两条公式对"之前计数"的用法不对称,是既有业务规则,必须原样保留
func (s *reviewService) SubmitReview(ctx context.Context, req *SubmitReviewRequest) (string, error) {
	if req.Decision == nil {
		return "", fmt.Errorf("decision is required")
	}
	approve := *req.Decision
	now := s.now()
	var reviewed model.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task model.Task
		err := tx.
			Where("task_id = ? AND qa_assigned_id = ? AND task_status = ?",
				req.TaskID, req.QAID, model.TaskStatusUnderReview).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}
		if task.SubmittedByID == nil {
			return fmt.Errorf("task %d under review has no submitter", task.TaskID)
		}

		var qaMember model.QAMember
		if err := tx.Where("qa_member_id = ?", req.QAID).First(&qaMember).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQAMemberNotFound
			}
			return fmt.Errorf("failed to load qa member: %w", err)
		}

		// 语言对记录由测评子系统在此之前创建,缺失属于不可恢复的完整性错误
		var pair model.FreelancerLanguagePair
		err = tx.
			Where("freelancer_id = ? AND source_language_id = ? AND target_language_id = ?",
				*task.SubmittedByID, task.SourceLanguageID, task.TargetLanguageID).
			First(&pair).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLanguagePairNotFound
			}
			return fmt.Errorf("failed to load language pair: %w", err)
		}

		qaMember.TotalTasksReviewed++

		previousComplete := pair.CompleteTask
		previousRejected := pair.RejectedTask

		if approve {
			taskUpdates := map[string]interface{}{
				"task_status":       model.TaskStatusComplete,
				"qa_reviewed_by_id": req.QAID,
				"qa_reviewed_at":    now,
			}
			err := tx.Model(&model.Task{}).
				Where("task_id = ? AND qa_assigned_id = ? AND task_status = ?",
					task.TaskID, req.QAID, model.TaskStatusUnderReview).
				Updates(taskUpdates).Error
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}

			err = tx.Model(&model.Freelancer{}).
				Where("freelancer_id = ?", *task.SubmittedByID).
				Updates(map[string]interface{}{
					"total_earnings":  gorm.Expr("total_earnings + ?", task.TaskPrice),
					"current_balance": gorm.Expr("current_balance + ?", task.TaskPrice),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to credit freelancer: %w", err)
			}

			pair.CompleteTask = previousComplete + 1
			pair.AccuracyRate = (float64(previousComplete+1) - float64(previousRejected)) /
				float64(previousComplete+1) * 100
			task.TaskStatus = model.TaskStatusComplete
		} else {
			// 驳回: 任务回到与从未被认领过无差别的全新 OPEN 状态
			taskUpdates := map[string]interface{}{
				"task_status":            model.TaskStatusOpen,
				"assigned_freelancer_id": nil,
				"assigned_at":            nil,
				"submitted_by_id":        nil,
				"translated_text":        nil,
				"submitted_at":           nil,
				"qa_assigned_id":         nil,
				"qa_assigned_at":         nil,
			}
			err := tx.Model(&model.Task{}).
				Where("task_id = ? AND qa_assigned_id = ? AND task_status = ?",
					task.TaskID, req.QAID, model.TaskStatusUnderReview).
				Updates(taskUpdates).Error
			if err != nil {
				return fmt.Errorf("failed to reopen task: %w", err)
			}

			qaMember.TotalTasksRejected++
			pair.CompleteTask = previousComplete + 1
			pair.RejectedTask = previousRejected + 1
			pair.AccuracyRate = (float64(previousComplete+1) - float64(previousRejected+1)) /
				float64(previousComplete+1) * 100
			task.TaskStatus = model.TaskStatusOpen
		}

		if err := tx.Save(&qaMember).Error; err != nil {
			return fmt.Errorf("failed to update qa member: %w", err)
		}
		if err := tx.Save(&pair).Error; err != nil {
			return fmt.Errorf("failed to update language pair: %w", err)
		}

		reviewed = task
		return nil
	})
	if err != nil {
		return "", err
	}

	if approve {
		metrics.RecordReview("approved")
		s.broadcast("task_approved", &reviewed)
	} else {
		metrics.RecordReview("rejected")
		s.broadcast("task_rejected", &reviewed)
	}

	return "QA review submitted successfully", nil
}

// broadcast 推送任务事件到队列动态
func (s *reviewService) broadcast(eventType string, task *model.Task) {
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
