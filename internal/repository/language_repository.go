package repository

import (
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// LanguageRepository 语言仓储接口
type LanguageRepository interface {
	Save(language *model.Language) error
	FindByID(id uint) (*model.Language, error)
	FindAll() ([]*model.Language, error)
}

// languageRepository 语言仓储实现
type languageRepository struct {
	db *gorm.DB
}

// NewLanguageRepository 创建语言仓储
func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &languageRepository{db: db}
}

// Save 保存语言
func (r *languageRepository) Save(language *model.Language) error {
	return r.db.Save(language).Error
}

// FindByID 根据 ID 查找语言
func (r *languageRepository) FindByID(id uint) (*model.Language, error) {
	var language model.Language
	if err := r.db.Where("language_id = ?", id).First(&language).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

// FindAll 查找所有语言
func (r *languageRepository) FindAll() ([]*model.Language, error) {
	var languages []*model.Language
	err := r.db.Order("language_id").Find(&languages).Error
	return languages, err
}
