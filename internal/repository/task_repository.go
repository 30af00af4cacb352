package repository

import (
	"errors"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository 任务仓储接口
type TaskRepository interface {
	Save(task *model.Task) error
	FindByID(id uint) (*model.Task, error)
	FindByJob(jobID uint) ([]*model.Task, error)
	CountByJob(jobID uint) (int64, error)
	CountByJobAndStatus(jobID uint, status model.TaskStatus) (int64, error)
	ClaimOpenTask(freelancerID, sourceLanguageID, targetLanguageID uint, now time.Time) (*model.Task, error)
	ClaimReviewTask(qaID, sourceLanguageID, targetLanguageID uint, now time.Time) (*model.Task, error)
	FindOpenTaskDetail(taskID uint) (*OpenTaskDetail, error)
}

// OpenTaskDetail 认领成功后返回给译员的任务详情
// 关联工单说明和两侧语言名称
type OpenTaskDetail struct {
	TaskID             uint    `gorm:"column:task_id" json:"task_id"`
	Instruction        string  `gorm:"column:instruction" json:"instruction"`
	MaxTimePerTask     int     `gorm:"column:max_time_per_task" json:"max_time_per_task"`
	Price              float64 `gorm:"column:price" json:"price"`
	SourceText         string  `gorm:"column:source_text" json:"source_text"`
	TranslatedText     *string `gorm:"column:translated_text" json:"translated_text"`
	SourceLanguageName string  `gorm:"column:source_language_name" json:"source_language_name"`
	TargetLanguageName string  `gorm:"column:target_language_name" json:"target_language_name"`
}

// taskRepository 任务仓储实现
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 创建任务仓储
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Save 保存任务
func (r *taskRepository) Save(task *model.Task) error {
	return r.db.Save(task).Error
}

// FindByID 根据 ID 查找任务
func (r *taskRepository) FindByID(id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.Where("task_id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByJob 查找工单下的所有任务
func (r *taskRepository) FindByJob(jobID uint) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("job_id = ?", jobID).Order("task_id").Find(&tasks).Error
	return tasks, err
}

// CountByJob 统计工单下的任务数
func (r *taskRepository) CountByJob(jobID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Task{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}

// CountByJobAndStatus 按状态统计工单下的任务数
func (r *taskRepository) CountByJobAndStatus(jobID uint, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Task{}).
		Where("job_id = ? AND task_status = ?", jobID, status).
		Count(&count).Error
	return count, err
}

// claimExpiredCondition 返回判定译员认领超时的 SQL 片段及其时间参数
// 超时窗口取决于行内的 max_time_per_task,因此必须在查询里按方言内联计算
func claimExpiredCondition(tx *gorm.DB, now time.Time) (string, interface{}) {
	if tx.Dialector.Name() == "postgres" {
		return "assigned_at + max_time_per_task * interval '1 minute' <= ?", now
	}
	// sqlite 用 datetime 修饰符计算同一个截止时间
	return "datetime(assigned_at, '+' || max_time_per_task || ' minutes') <= datetime(?)",
		now.UTC().Format("2006-01-02 15:04:05")
}

// lockForClaim 给认领查询加行锁
// postgres 下 SKIP LOCKED 保证并发认领互不阻塞也不会选中同一行;
// sqlite 没有该原语,由其单写事务锁串行化认领
func lockForClaim(tx *gorm.DB, query *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
	}
	return query
}

// ClaimOpenTask 原子认领一个可领任务
// 候选行: 匹配语言对的非测评任务,状态为 OPEN,或 ASSIGNED_TO_FL 但认领已超时
// (超时认领可被任何人重新认领)。按 task_id 从小到大取第一行,选中即写入认领信息
// 并在同一事务内提交。没有可领行时返回 nil, nil
func (r *taskRepository) ClaimOpenTask(freelancerID, sourceLanguageID, targetLanguageID uint, now time.Time) (*model.Task, error) {
	var claimed *model.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		expiredExpr, nowArg := claimExpiredCondition(tx, now)

		query := tx.
			Where("source_language_id = ? AND target_language_id = ? AND is_assessment = ?",
				sourceLanguageID, targetLanguageID, false).
			Where("task_status = ? OR (task_status = ? AND assigned_at IS NOT NULL AND "+expiredExpr+")",
				model.TaskStatusOpen, model.TaskStatusAssignedToFL, nowArg).
			Order("task_id")
		query = lockForClaim(tx, query)

		var task model.Task
		if err := query.First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		updates := map[string]interface{}{
			"assigned_freelancer_id": freelancerID,
			"assigned_at":            now,
			"task_status":            model.TaskStatusAssignedToFL,
		}
		if err := tx.Model(&model.Task{}).Where("task_id = ?", task.TaskID).Updates(updates).Error; err != nil {
			return err
		}

		assignedAt := now
		task.AssignedFreelancerID = &freelancerID
		task.AssignedAt = &assignedAt
		task.TaskStatus = model.TaskStatusAssignedToFL
		claimed = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ClaimReviewTask 原子认领一个待审核任务
// 候选行: 匹配语言对的非测评任务,状态为 UNDER_REVIEW 且尚未被其他审核员认领。
// QA 认领没有超时回收,与译员认领不同
func (r *taskRepository) ClaimReviewTask(qaID, sourceLanguageID, targetLanguageID uint, now time.Time) (*model.Task, error) {
	var claimed *model.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("source_language_id = ? AND target_language_id = ? AND is_assessment = ?",
				sourceLanguageID, targetLanguageID, false).
			Where("task_status = ? AND qa_assigned_id IS NULL AND qa_assigned_at IS NULL",
				model.TaskStatusUnderReview).
			Order("task_id")
		query = lockForClaim(tx, query)

		var task model.Task
		if err := query.First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		updates := map[string]interface{}{
			"qa_assigned_id": qaID,
			"qa_assigned_at": now,
		}
		if err := tx.Model(&model.Task{}).Where("task_id = ?", task.TaskID).Updates(updates).Error; err != nil {
			return err
		}

		assignedAt := now
		task.QAAssignedID = &qaID
		task.QAAssignedAt = &assignedAt
		claimed = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// FindOpenTaskDetail 查询任务详情,带工单说明和语言名称
func (r *taskRepository) FindOpenTaskDetail(taskID uint) (*OpenTaskDetail, error) {
	var detail OpenTaskDetail
	err := r.db.Table("task").
		Select("task.task_id, job.instructions AS instruction, task.max_time_per_task, "+
			"task.task_price AS price, task.source_text, task.translated_text, "+
			"sl.language_name AS source_language_name, tl.language_name AS target_language_name").
		Joins("JOIN job ON task.job_id = job.job_id").
		Joins("JOIN language sl ON task.source_language_id = sl.language_id").
		Joins("JOIN language tl ON task.target_language_id = tl.language_id").
		Where("task.task_id = ?", taskID).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
