package repository

import (
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// LanguagePairRepository 译员语言对台账仓储接口
type LanguagePairRepository interface {
	Save(pair *model.FreelancerLanguagePair) error
	FindByPair(freelancerID, sourceLanguageID, targetLanguageID uint) (*model.FreelancerLanguagePair, error)
	FindByPairEitherOrder(freelancerID, sourceLanguageID, targetLanguageID uint) (*model.FreelancerLanguagePair, error)
	FindByFreelancer(freelancerID uint) ([]*model.FreelancerLanguagePair, error)
}

// languagePairRepository 译员语言对台账仓储实现
type languagePairRepository struct {
	db *gorm.DB
}

// NewLanguagePairRepository 创建语言对台账仓储
func NewLanguagePairRepository(db *gorm.DB) LanguagePairRepository {
	return &languagePairRepository{db: db}
}

// Save 保存语言对记录
func (r *languagePairRepository) Save(pair *model.FreelancerLanguagePair) error {
	return r.db.Save(pair).Error
}

// FindByPair 按 (译员, 源语言, 目标语言) 精确查找
func (r *languagePairRepository) FindByPair(freelancerID, sourceLanguageID, targetLanguageID uint) (*model.FreelancerLanguagePair, error) {
	var pair model.FreelancerLanguagePair
	err := r.db.
		Where("freelancer_id = ? AND source_language_id = ? AND target_language_id = ?",
			freelancerID, sourceLanguageID, targetLanguageID).
		First(&pair).Error
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// FindByPairEitherOrder 双向查找语言对
// 记录可能以任一方向存储,取决于最初测评时的方向,
// 每个无序组合每位译员只会有一条持久化记录
func (r *languagePairRepository) FindByPairEitherOrder(freelancerID, sourceLanguageID, targetLanguageID uint) (*model.FreelancerLanguagePair, error) {
	var pair model.FreelancerLanguagePair
	err := r.db.
		Where("freelancer_id = ?", freelancerID).
		Where("(source_language_id = ? AND target_language_id = ?) OR (source_language_id = ? AND target_language_id = ?)",
			sourceLanguageID, targetLanguageID, targetLanguageID, sourceLanguageID).
		First(&pair).Error
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// FindByFreelancer 查找译员的所有语言对
func (r *languagePairRepository) FindByFreelancer(freelancerID uint) ([]*model.FreelancerLanguagePair, error) {
	var pairs []*model.FreelancerLanguagePair
	err := r.db.Where("freelancer_id = ?", freelancerID).Order("language_pair_id").Find(&pairs).Error
	return pairs, err
}
