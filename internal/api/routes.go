package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"github.com/itsakphyo/myanlang-translation-platform/internal/service"
	"github.com/itsakphyo/myanlang-translation-platform/internal/websocket"
	"gorm.io/gorm"
)

// RouterDeps 路由依赖
// hub 可为 nil,此时不注册 WebSocket 路由
type RouterDeps struct {
	DB                *gorm.DB
	Hub               *websocket.Hub
	LifecycleService  service.LifecycleService
	ReviewService     service.ReviewService
	LedgerService     service.LedgerService
	JobService        service.JobService
	StatisticsService service.StatisticsService
	LanguageRepo      repository.LanguageRepository
}

// SetupRoutes 配置路由
func SetupRoutes(cfg *config.Config, deps *RouterDeps) *gin.Engine {
	if cfg != nil && cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(ErrorHandlerMiddleware())
	if cfg != nil {
		router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
		if cfg.RateLimit.Enabled {
			router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 队列动态
	if deps.Hub != nil {
		router.GET("/ws/queue", websocket.QueueFeedHandler(deps.Hub))
	}

	taskController := NewTaskController(deps.LifecycleService)
	reviewController := NewReviewController(deps.ReviewService)
	freelancerController := NewFreelancerController(deps.LedgerService)
	jobController := NewJobController(deps.JobService)
	statisticsController := NewStatisticsController(deps.StatisticsService)
	languageController := NewLanguageController(deps.LanguageRepo)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 译员任务路由
		tasks := v1.Group("/tasks")
		{
			tasks.GET("/open", taskController.OpenTask)
			tasks.POST("/submit", taskController.SubmitTask)
		}

		// QA 审核路由
		qa := v1.Group("/qa")
		{
			qa.GET("/next-task", reviewController.NextTask)
			qa.POST("/review", reviewController.SubmitReview)
		}

		// 工单管理路由
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", jobController.Create)
			jobs.GET("", jobController.List)
			jobs.GET("/:id", jobController.Get)
			jobs.GET("/:id/progress", jobController.Progress)
			jobs.PATCH("/:id", jobController.Update)
			jobs.DELETE("/:id", jobController.Delete)
			jobs.GET("/:id/tasks/csv", jobController.ExportCSV)
		}

		// 译员台账路由
		freelancers := v1.Group("/freelancers")
		{
			freelancers.GET("/language-pair", freelancerController.LanguagePairStanding)
			freelancers.GET("/:id/language-pairs", freelancerController.ListLanguagePairs)
			freelancers.GET("/:id/balance", freelancerController.Balance)
		}

		// 队列统计路由
		v1.GET("/queue/stats", statisticsController.QueueStats)

		// 语言目录路由
		languages := v1.Group("/languages")
		{
			languages.GET("", languageController.List)
			languages.POST("", languageController.Create)
		}
	}

	// 未匹配路由统一返回 JSON 404
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    404,
			Message: "route not found",
		})
	})

	return router
}
