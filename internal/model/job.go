package model

import (
	"errors"
	"time"
)

// JobStatus 工单状态
type JobStatus string

const (
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusClosed     JobStatus = "closed"
)

// Job 翻译工单数据模型
// 一个工单在创建时按 CSV 行拆分为若干任务
type Job struct {
	JobID            uint      `gorm:"column:job_id;primaryKey;autoIncrement" json:"job_id"`
	JobTitle         string    `gorm:"column:job_title;not null" json:"job_title"`
	SourceLanguageID uint      `gorm:"column:source_language_id;not null;index" json:"source_language_id"`
	TargetLanguageID uint      `gorm:"column:target_language_id;not null;index" json:"target_language_id"`
	TotalTasks       *int      `gorm:"column:total_tasks" json:"total_tasks"`
	JobStatus        JobStatus `gorm:"column:job_status;type:varchar(32);not null;default:in_progress" json:"job_status"`
	MaxTimePerTask   int       `gorm:"column:max_time_per_task;not null;default:10" json:"max_time_per_task"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`
	TaskPrice        float64   `gorm:"column:task_price;not null" json:"task_price"`
	Instructions     string    `gorm:"column:instructions;not null" json:"instructions"`
	Notes            string    `gorm:"column:notes" json:"notes"`
}

// TableName 指定表名
func (Job) TableName() string {
	return "job"
}

// Validate 验证工单模型
func (j *Job) Validate() error {
	if j.JobTitle == "" {
		return errors.New("job title is required")
	}
	if j.Instructions == "" {
		return errors.New("instructions are required")
	}
	if j.MaxTimePerTask <= 0 {
		return errors.New("max time per task must be positive")
	}
	if j.TaskPrice < 0 {
		return errors.New("task price must not be negative")
	}
	return nil
}
