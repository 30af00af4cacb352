package repository_test

import (
	"testing"

	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDBForPairRepo 创建测试数据库
func setupTestDBForPairRepo(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

// TestFindByPairEitherOrder 测试双向语言对查找
func TestFindByPairEitherOrder(t *testing.T) {
	db := setupTestDBForPairRepo(t)
	repo := repository.NewLanguagePairRepository(db)

	pair := &model.FreelancerLanguagePair{
		FreelancerID:     1,
		SourceLanguageID: 3,
		TargetLanguageID: 5,
		Status:           model.PairStatusComplete,
		AccuracyRate:     90,
		CompleteTask:     9,
		RejectedTask:     1,
	}
	require.NoError(t, repo.Save(pair))

	// 存储方向
	found, err := repo.FindByPairEitherOrder(1, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, pair.LanguagePairID, found.LanguagePairID)

	// 相反方向也命中同一条记录
	reversed, err := repo.FindByPairEitherOrder(1, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, pair.LanguagePairID, reversed.LanguagePairID)
}

// TestFindByPair_ExactOrderOnly 测试精确查找区分方向
func TestFindByPair_ExactOrderOnly(t *testing.T) {
	db := setupTestDBForPairRepo(t)
	repo := repository.NewLanguagePairRepository(db)

	require.NoError(t, repo.Save(&model.FreelancerLanguagePair{
		FreelancerID:     1,
		SourceLanguageID: 3,
		TargetLanguageID: 5,
		Status:           model.PairStatusUnderReview,
		AccuracyRate:     100,
	}))

	_, err := repo.FindByPair(1, 3, 5)
	require.NoError(t, err)

	_, err = repo.FindByPair(1, 5, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestFindByPairEitherOrder_OtherFreelancer 测试不同译员的记录互不可见
func TestFindByPairEitherOrder_OtherFreelancer(t *testing.T) {
	db := setupTestDBForPairRepo(t)
	repo := repository.NewLanguagePairRepository(db)

	require.NoError(t, repo.Save(&model.FreelancerLanguagePair{
		FreelancerID:     1,
		SourceLanguageID: 3,
		TargetLanguageID: 5,
		Status:           model.PairStatusComplete,
		AccuracyRate:     100,
	}))

	_, err := repo.FindByPairEitherOrder(2, 3, 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestFindByFreelancer 测试列出译员全部语言对
func TestFindByFreelancer(t *testing.T) {
	db := setupTestDBForPairRepo(t)
	repo := repository.NewLanguagePairRepository(db)

	require.NoError(t, repo.Save(&model.FreelancerLanguagePair{
		FreelancerID: 1, SourceLanguageID: 3, TargetLanguageID: 5,
		Status: model.PairStatusComplete, AccuracyRate: 100,
	}))
	require.NoError(t, repo.Save(&model.FreelancerLanguagePair{
		FreelancerID: 1, SourceLanguageID: 2, TargetLanguageID: 4,
		Status: model.PairStatusUnderReview, AccuracyRate: 100,
	}))
	require.NoError(t, repo.Save(&model.FreelancerLanguagePair{
		FreelancerID: 2, SourceLanguageID: 3, TargetLanguageID: 5,
		Status: model.PairStatusComplete, AccuracyRate: 100,
	}))

	pairs, err := repo.FindByFreelancer(1)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}
