package service

import (
	"context"
	"fmt"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// StatisticsService 队列统计服务接口
// 提供待领/待审队列的聚合视图,供运营端展示
type StatisticsService interface {
	GetQueueStats(ctx context.Context) (*QueueStats, error)
}

// QueueStats 队列统计快照
type QueueStats struct {
	TasksByStatus map[string]int64 `json:"tasks_by_status"`
	OpenByPair    []PairQueueDepth `json:"open_by_pair"`
	ReviewByPair  []PairQueueDepth `json:"review_by_pair"`
}

// PairQueueDepth 某个无序语言组合的队列深度
// 组合用 MIN/MAX 归一,两个方向的任务算同一组
type PairQueueDepth struct {
	LanguageAID uint  `gorm:"column:language_a_id" json:"language_a_id"`
	LanguageBID uint  `gorm:"column:language_b_id" json:"language_b_id"`
	Count       int64 `gorm:"column:count" json:"count"`
}

// statisticsService 队列统计服务实现
type statisticsService struct {
	db *gorm.DB
}

// NewStatisticsService 创建队列统计服务
func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetQueueStats 统计当前队列
// 只统计非测评任务;待审队列只计尚未被 QA 认领的行
func (s *statisticsService) GetQueueStats(ctx context.Context) (*QueueStats, error) {
	stats := &QueueStats{
		TasksByStatus: make(map[string]int64),
	}

	type statusCount struct {
		TaskStatus string `gorm:"column:task_status"`
		Count      int64  `gorm:"column:count"`
	}
	var statusCounts []statusCount
	err := s.db.Model(&model.Task{}).
		Select("task_status, COUNT(*) AS count").
		Where("is_assessment = ?", false).
		Group("task_status").
		Find(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}
	for _, status := range []model.TaskStatus{
		model.TaskStatusOpen,
		model.TaskStatusAssignedToFL,
		model.TaskStatusUnderReview,
		model.TaskStatusComplete,
	} {
		stats.TasksByStatus[string(status)] = 0
	}
	for _, c := range statusCounts {
		stats.TasksByStatus[c.TaskStatus] = c.Count
	}

	openByPair, err := s.countByPair(model.TaskStatusOpen, false)
	if err != nil {
		return nil, err
	}
	stats.OpenByPair = openByPair

	reviewByPair, err := s.countByPair(model.TaskStatusUnderReview, true)
	if err != nil {
		return nil, err
	}
	stats.ReviewByPair = reviewByPair

	return stats, nil
}

// countByPair 按无序语言组合统计某状态的队列深度
func (s *statisticsService) countByPair(status model.TaskStatus, unclaimedOnly bool) ([]PairQueueDepth, error) {
	query := s.db.Model(&model.Task{}).
		Select("MIN(source_language_id, target_language_id) AS language_a_id, "+
			"MAX(source_language_id, target_language_id) AS language_b_id, "+
			"COUNT(*) AS count").
		Where("is_assessment = ? AND task_status = ?", false, status)
	if s.db.Dialector.Name() == "postgres" {
		query = s.db.Model(&model.Task{}).
			Select("LEAST(source_language_id, target_language_id) AS language_a_id, "+
				"GREATEST(source_language_id, target_language_id) AS language_b_id, "+
				"COUNT(*) AS count").
			Where("is_assessment = ? AND task_status = ?", false, status)
	}
	if unclaimedOnly {
		query = query.Where("qa_assigned_id IS NULL")
	}

	var depths []PairQueueDepth
	err := query.
		Group("language_a_id, language_b_id").
		Order("language_a_id, language_b_id").
		Find(&depths).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count queue depth by pair: %w", err)
	}
	return depths, nil
}
