package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// Collector 指标收集器
// 周期性刷新数据库连接池和任务状态分布指标
type Collector struct {
	db       *gorm.DB
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
	mu       sync.Mutex
}

// NewCollector 创建指标收集器
func NewCollector(db *gorm.DB, interval time.Duration) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		db:       db,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start 启动指标收集器,重复调用只生效一次
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	go c.collect()
}

// Stop 停止指标收集器并等待采集协程退出
// 从未 Start 过时直接返回,不能在 done 上干等
func (c *Collector) Stop() {
	c.cancel()

	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return
	}
	<-c.done
}

// collect 定期收集指标
func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			_ = UpdateDatabaseConnections(c.db)
			c.updateTaskStatusGauge()
		}
	}
}

// updateTaskStatusGauge 刷新任务状态分布
// 没有任务的状态也要归零,否则旧值会一直残留
func (c *Collector) updateTaskStatusGauge() {
	var rows []struct {
		TaskStatus string
		Count      int64
	}
	err := c.db.Model(&model.Task{}).
		Select("task_status, COUNT(*) AS count").
		Where("is_assessment = ?", false).
		Group("task_status").
		Find(&rows).Error
	if err != nil {
		return
	}

	counts := map[string]float64{
		string(model.TaskStatusOpen):         0,
		string(model.TaskStatusAssignedToFL): 0,
		string(model.TaskStatusUnderReview):  0,
		string(model.TaskStatusComplete):     0,
	}
	for _, row := range rows {
		counts[row.TaskStatus] = float64(row.Count)
	}
	for status, count := range counts {
		UpdateTasksByStatus(status, count)
	}
}
