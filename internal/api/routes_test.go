package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itsakphyo/myanlang-translation-platform/internal/api"
	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/container"
	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRouter 基于内存数据库构建完整路由
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ctr := container.NewContainerWithDB(db)
	router := api.SetupRoutes(config.Default(), &api.RouterDeps{
		DB:                ctr.DB(),
		LifecycleService:  ctr.LifecycleService(),
		ReviewService:     ctr.ReviewService(),
		LedgerService:     ctr.LedgerService(),
		JobService:        ctr.JobService(),
		StatisticsService: ctr.StatisticsService(),
		LanguageRepo:      ctr.LanguageRepo(),
	})
	return router, db
}

// seedAPIFixtures 写入语言、译员和一条 OPEN 任务
func seedAPIFixtures(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Create(&model.Language{LanguageName: "Burmese"}).Error)
	require.NoError(t, db.Create(&model.Language{LanguageName: "English"}).Error)
	require.NoError(t, db.Create(&model.Freelancer{FullName: "Aung Aung", Email: "aung@example.com"}).Error)

	job := &model.Job{
		JobTitle:         "News batch",
		SourceLanguageID: 1,
		TargetLanguageID: 2,
		JobStatus:        model.JobStatusInProgress,
		MaxTimePerTask:   10,
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
		TaskPrice:        0.5,
		Instructions:     "Translate naturally",
	}
	require.NoError(t, db.Create(job).Error)
	require.NoError(t, db.Create(&model.Task{
		JobID:            job.JobID,
		SourceLanguageID: 1,
		TargetLanguageID: 2,
		SourceText:       "Hello",
		MaxTimePerTask:   10,
		TaskPrice:        0.5,
		TaskStatus:       model.TaskStatusOpen,
	}).Error)
}

// decodeResponse 解析统一响应格式
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// TestHealthEndpoint 测试健康检查
func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "healthy", body["status"])
}

// TestMetricsEndpoint 测试指标端点输出 Prometheus 文本
func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	// 先打一次请求,让请求计数器产生样本
	warmup := httptest.NewRecorder()
	router.ServeHTTP(warmup, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_requests_total")
}

// TestOpenTaskEndpoint 测试认领接口
func TestOpenTaskEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/tasks/open?freelancer_id=1&source_language_id=1&target_language_id=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Hello", data["source_text"])
	assert.Equal(t, "Burmese", data["source_language_name"])

	// 唯一任务已被认领,再来一次拿到提示消息
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/api/v1/tasks/open?freelancer_id=1&source_language_id=1&target_language_id=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeResponse(t, w)
	assert.Equal(t, "no open tasks available for this language pair", body["message"])
}

// TestOpenTaskEndpoint_MissingParams 测试缺少必填参数
func TestOpenTaskEndpoint_MissingParams(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/open?freelancer_id=1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSubmitTaskEndpoint_NotOwned 测试提交不属于自己的任务返回 404
func TestSubmitTaskEndpoint_NotOwned(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	payload, _ := json.Marshal(map[string]interface{}{
		"freelancer_id":   1,
		"task_id":         1,
		"translated_text": "text",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// 任务还是 OPEN,没认领就提交
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestSubmitTaskEndpoint_MissingAssignmentTime 测试认领时间缺失的脏数据返回 400
func TestSubmitTaskEndpoint_MissingAssignmentTime(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	// 直接把任务改成已认领但抹掉认领时间
	flID := uint(1)
	require.NoError(t, db.Model(&model.Task{}).Where("task_id = ?", 1).Updates(map[string]interface{}{
		"task_status":            model.TaskStatusAssignedToFL,
		"assigned_freelancer_id": flID,
		"assigned_at":            nil,
	}).Error)

	payload, _ := json.Marshal(map[string]interface{}{
		"freelancer_id":   1,
		"task_id":         1,
		"translated_text": "text",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "task has no assignment time set", body["detail"])
}

// TestReviewEndpoint_UnknownQA 测试未知审核员认领返回 400
func TestReviewEndpoint_UnknownQA(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/qa/next-task?qa_id=9&source_language_id=1&target_language_id=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestLanguagePairEndpoint_NotFound 测试没有台账记录返回 status=not_found
func TestLanguagePairEndpoint_NotFound(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/freelancers/language-pair?freelancer_id=1&source_language_id=1&target_language_id=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "not_found", data["status"])
}

// TestCreateJobEndpoint 测试 multipart 建单
func TestCreateJobEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("job_title", "Uploaded batch"))
	require.NoError(t, writer.WriteField("source_language_id", "1"))
	require.NoError(t, writer.WriteField("target_language_id", "2"))
	require.NoError(t, writer.WriteField("task_price", "0.4"))
	require.NoError(t, writer.WriteField("instructions", "Keep tone neutral"))
	part, err := writer.CreateFormFile("file", "texts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("First line\nSecond line\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Where("source_text IN ?", []string{"First line", "Second line"}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// TestQueueStatsEndpoint 测试队列统计
func TestQueueStatsEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	seedAPIFixtures(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/queue/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	byStatus, ok := data["tasks_by_status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), byStatus["OPEN"])
}

// TestNoRouteReturnsJSON 测试未匹配路由返回 JSON 404
func TestNoRouteReturnsJSON(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nothing-here", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "route not found", body["message"])
}

// TestRequestIDHeader 测试请求 ID 透传与生成
func TestRequestIDHeader(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
