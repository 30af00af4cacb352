package container

import (
	"fmt"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/itsakphyo/myanlang-translation-platform/internal/metrics"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
	"github.com/itsakphyo/myanlang-translation-platform/internal/websocket"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理数据库、仓储、服务和其他长生命周期组件
type Container struct {
	db                *gorm.DB
	hub               *websocket.Hub
	collector         *metrics.Collector
	languageRepo      repository.LanguageRepository
	lifecycleService  service.LifecycleService
	reviewService     service.ReviewService
	ledgerService     service.LedgerService
	jobService        service.JobService
	statisticsService service.StatisticsService
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化数据库,重试 3 次,初始间隔 1 秒,指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return newContainerWithDB(db), nil
}

// NewContainerWithDB 基于已有连接创建容器,不执行迁移
func NewContainerWithDB(db *gorm.DB) *Container {
	return newContainerWithDB(db)
}

func newContainerWithDB(db *gorm.DB) *Container {
	hub := websocket.NewHub()

	taskRepo := repository.NewTaskRepository(db)
	jobRepo := repository.NewJobRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	freelancerRepo := repository.NewFreelancerRepository(db)
	qaRepo := repository.NewQAMemberRepository(db)
	pairRepo := repository.NewLanguagePairRepository(db)

	return &Container{
		db:                db,
		hub:               hub,
		collector:         metrics.NewCollector(db, 15*time.Second),
		languageRepo:      languageRepo,
		lifecycleService:  service.NewLifecycleService(taskRepo, db, hub),
		reviewService:     service.NewReviewService(taskRepo, qaRepo, languageRepo, db, hub),
		ledgerService:     service.NewLedgerService(pairRepo, freelancerRepo),
		jobService:        service.NewJobService(jobRepo, taskRepo, languageRepo),
		statisticsService: service.NewStatisticsService(db),
	}
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Hub 获取 WebSocket 队列动态中心
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Collector 获取指标采集器
func (c *Container) Collector() *metrics.Collector {
	return c.collector
}

// LanguageRepo 获取语言仓储
func (c *Container) LanguageRepo() repository.LanguageRepository {
	return c.languageRepo
}

// LifecycleService 获取任务生命周期服务
func (c *Container) LifecycleService() service.LifecycleService {
	return c.lifecycleService
}

// ReviewService 获取 QA 审核服务
func (c *Container) ReviewService() service.ReviewService {
	return c.reviewService
}

// LedgerService 获取译员台账服务
func (c *Container) LedgerService() service.LedgerService {
	return c.ledgerService
}

// JobService 获取工单管理服务
func (c *Container) JobService() service.JobService {
	return c.jobService
}

// StatisticsService 获取队列统计服务
func (c *Container) StatisticsService() service.StatisticsService {
	return c.statisticsService
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.collector != nil {
		c.collector.Stop()
	}
	return database.Close(c.db)
}
