package database_test

import (
	"testing"

	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestBuildDSN 测试 DSN 拼装
func TestBuildDSN(t *testing.T) {
	dsn := database.BuildDSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "myanlang",
		Password: "secret",
		DBName:   "marketplace",
		SSLMode:  "require",
	})
	assert.Equal(t, "host=db.internal port=5433 user=myanlang password=secret dbname=marketplace sslmode=require", dsn)
}

// TestMigrate 测试迁移建表和建索引
func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	// 所有表可写
	require.NoError(t, db.Create(&model.Language{LanguageName: "Burmese"}).Error)
	require.NoError(t, db.Create(&model.Freelancer{FullName: "A", Email: "a@example.com"}).Error)
	require.NoError(t, db.Create(&model.QAMember{FullName: "Q", Email: "q@example.com"}).Error)
	require.NoError(t, db.Create(&model.FreelancerLanguagePair{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
		Status: model.PairStatusUnderReview, AccuracyRate: 100,
	}).Error)

	// 重复迁移幂等
	require.NoError(t, database.Migrate(db))
}

// TestMigrate_UniquePairConstraint 测试语言对唯一约束
func TestMigrate_UniquePairConstraint(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	pair := model.FreelancerLanguagePair{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
		Status: model.PairStatusComplete, AccuracyRate: 100,
	}
	require.NoError(t, db.Create(&pair).Error)

	dup := model.FreelancerLanguagePair{
		FreelancerID: 1, SourceLanguageID: 1, TargetLanguageID: 2,
		Status: model.PairStatusComplete, AccuracyRate: 100,
	}
	assert.Error(t, db.Create(&dup).Error, "same combination per freelancer must be unique")
}

// TestCheckHealth 测试健康检查
func TestCheckHealth(t *testing.T) {
	assert.False(t, database.CheckHealth(nil))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	assert.True(t, database.CheckHealth(db))
}

// TestClose 测试关闭连接
func TestClose(t *testing.T) {
	assert.NoError(t, database.Close(nil))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	assert.NoError(t, database.Close(db))
}
