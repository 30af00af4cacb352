package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusOpen         TaskStatus = "OPEN"
	TaskStatusAssignedToFL TaskStatus = "ASSIGNED_TO_FL"
	TaskStatusUnderReview  TaskStatus = "UNDER_REVIEW"
	TaskStatusComplete     TaskStatus = "COMPLETE"
)

// ParseTaskStatus 规范化任务状态字符串
// 在边界处拒绝未知值,不允许自由字符串入库
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskStatusOpen:
		return TaskStatusOpen, nil
	case TaskStatusAssignedToFL:
		return TaskStatusAssignedToFL, nil
	case TaskStatusUnderReview:
		return TaskStatusUnderReview, nil
	case TaskStatusComplete:
		return TaskStatusComplete, nil
	default:
		return "", fmt.Errorf("unknown task status: %q", s)
	}
}

// Valid 判断任务状态是否合法
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusAssignedToFL, TaskStatusUnderReview, TaskStatusComplete:
		return true
	}
	return false
}

// Task 翻译任务数据模型
// 一条记录对应一个翻译(或测评)工作单元
type Task struct {
	TaskID               uint       `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	JobID                uint       `gorm:"column:job_id;not null;index" json:"job_id"`
	SourceLanguageID     uint       `gorm:"column:source_language_id;not null;index" json:"source_language_id"`
	TargetLanguageID     uint       `gorm:"column:target_language_id;not null;index" json:"target_language_id"`
	SourceText           string     `gorm:"column:source_text;not null" json:"source_text"`
	TranslatedText       *string    `gorm:"column:translated_text" json:"translated_text"`
	MaxTimePerTask       int        `gorm:"column:max_time_per_task;not null" json:"max_time_per_task"` // 分钟
	TaskPrice            float64    `gorm:"column:task_price;not null" json:"task_price"`
	TaskStatus           TaskStatus `gorm:"column:task_status;type:varchar(32);not null;index" json:"task_status"`
	IsAssessment         bool       `gorm:"column:is_assessment;not null;default:false" json:"is_assessment"`
	AssignedFreelancerID *uint      `gorm:"column:assigned_freelancer_id;index" json:"assigned_freelancer_id"`
	SubmittedByID        *uint      `gorm:"column:submitted_by_id;index" json:"submitted_by_id"`
	QAAssignedID         *uint      `gorm:"column:qa_assigned_id;index" json:"qa_assigned_id"`
	QAReviewedByID       *uint      `gorm:"column:qa_reviewed_by_id;index" json:"qa_reviewed_by_id"`
	AssignedAt           *time.Time `gorm:"column:assigned_at" json:"assigned_at"`
	SubmittedAt          *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	QAAssignedAt         *time.Time `gorm:"column:qa_assigned_at" json:"qa_assigned_at"`
	QAReviewedAt         *time.Time `gorm:"column:qa_reviewed_at" json:"qa_reviewed_at"`
}

// TableName 指定表名
func (Task) TableName() string {
	return "task"
}

// Validate 验证任务模型
// 除必填字段外,还检查状态相关的不变式:
// ASSIGNED_TO_FL 必须带认领人和认领时间,UNDER_REVIEW 必须带提交人和提交时间
func (t *Task) Validate() error {
	if t.SourceText == "" {
		return errors.New("source text is required")
	}
	if t.MaxTimePerTask <= 0 {
		return errors.New("max time per task must be positive")
	}
	if t.TaskPrice < 0 {
		return errors.New("task price must not be negative")
	}
	if !t.TaskStatus.Valid() {
		return fmt.Errorf("unknown task status: %q", t.TaskStatus)
	}
	if t.TaskStatus == TaskStatusAssignedToFL && (t.AssignedFreelancerID == nil || t.AssignedAt == nil) {
		return errors.New("assigned task requires assigned_freelancer_id and assigned_at")
	}
	if t.TaskStatus == TaskStatusUnderReview && (t.SubmittedByID == nil || t.SubmittedAt == nil) {
		return errors.New("task under review requires submitted_by_id and submitted_at")
	}
	return nil
}
