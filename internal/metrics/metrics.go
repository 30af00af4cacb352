package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 译员认领数
	taskClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "task_claims_total",
			Help: "Total number of tasks claimed by freelancers",
		},
	)

	// 译文提交数(按结果区分按时提交和超时)
	taskSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_submissions_total",
			Help: "Total number of task submissions",
		},
		[]string{"result"}, // submitted, expired
	)

	// QA 认领数
	reviewClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "review_claims_total",
			Help: "Total number of review tasks claimed by QA members",
		},
	)

	// QA 审核数
	qaReviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qa_reviews_total",
			Help: "Total number of QA review decisions",
		},
		[]string{"decision"}, // approved, rejected
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)

	// 任务状态分布
	tasksByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tasks_by_status",
			Help: "Number of tasks by status",
		},
		[]string{"status"},
	)
)

var (
	once sync.Once
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(taskClaimsTotal)
	prometheus.MustRegister(taskSubmissionsTotal)
	prometheus.MustRegister(reviewClaimsTotal)
	prometheus.MustRegister(qaReviewsTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)
	prometheus.MustRegister(tasksByStatus)

	// 注册 Go 运行时指标(只注册一次)
	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordTaskClaimed 记录译员认领
func RecordTaskClaimed() {
	taskClaimsTotal.Inc()
}

// RecordTaskSubmission 记录译文提交
func RecordTaskSubmission(result string) {
	taskSubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordReviewClaimed 记录 QA 认领
func RecordReviewClaimed() {
	reviewClaimsTotal.Inc()
}

// RecordReview 记录 QA 审核决定
func RecordReview(decision string) {
	qaReviewsTotal.WithLabelValues(decision).Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}

// UpdateTasksByStatus 更新任务状态分布指标
func UpdateTasksByStatus(status string, count float64) {
	tasksByStatus.WithLabelValues(status).Set(count)
}
