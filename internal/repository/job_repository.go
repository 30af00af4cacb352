package repository

import (
	"fmt"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// JobRepository 工单仓储接口
type JobRepository interface {
	Save(job *model.Job) error
	FindByID(id uint) (*model.Job, error)
	FindAll() ([]*JobWithLanguages, error)
	CreateWithTasks(job *model.Job, sourceTexts []string) error
	Delete(id uint) error
}

// JobWithLanguages 工单列表项,带两侧语言名称
type JobWithLanguages struct {
	model.Job
	SourceLanguageName string `gorm:"column:source_language_name" json:"source_language_name"`
	TargetLanguageName string `gorm:"column:target_language_name" json:"target_language_name"`
}

// jobRepository 工单仓储实现
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository 创建工单仓储
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Save 保存工单
func (r *jobRepository) Save(job *model.Job) error {
	return r.db.Save(job).Error
}

// FindByID 根据 ID 查找工单
func (r *jobRepository) FindByID(id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.Where("job_id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindAll 查找所有工单,带语言名称
func (r *jobRepository) FindAll() ([]*JobWithLanguages, error) {
	var jobs []*JobWithLanguages
	err := r.db.Table("job").
		Select("job.*, sl.language_name AS source_language_name, tl.language_name AS target_language_name").
		Joins("JOIN language sl ON job.source_language_id = sl.language_id").
		Joins("JOIN language tl ON job.target_language_id = tl.language_id").
		Order("job.job_id").
		Find(&jobs).Error
	return jobs, err
}

// CreateWithTasks 创建工单并按源文本行展开任务
// 工单和全部任务在同一事务内写入,任务初始为 OPEN 非测评
func (r *jobRepository) CreateWithTasks(job *model.Job, sourceTexts []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		total := len(sourceTexts)
		job.TotalTasks = &total
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}

		for _, text := range sourceTexts {
			task := &model.Task{
				JobID:            job.JobID,
				SourceLanguageID: job.SourceLanguageID,
				TargetLanguageID: job.TargetLanguageID,
				SourceText:       text,
				MaxTimePerTask:   job.MaxTimePerTask,
				TaskPrice:        job.TaskPrice,
				TaskStatus:       model.TaskStatusOpen,
				IsAssessment:     false,
			}
			if err := task.Validate(); err != nil {
				return fmt.Errorf("invalid task row: %w", err)
			}
			if err := tx.Create(task).Error; err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
		}
		return nil
	})
}

// Delete 删除工单及其任务
// 任务随工单级联删除,在同一事务内完成
func (r *jobRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Where("job_id = ?", id).Delete(&model.Job{}).Error; err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		return nil
	})
}
