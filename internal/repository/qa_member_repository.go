package repository

import (
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// QAMemberRepository QA 审核员仓储接口
type QAMemberRepository interface {
	Save(member *model.QAMember) error
	FindByID(id uint) (*model.QAMember, error)
}

// qaMemberRepository QA 审核员仓储实现
type qaMemberRepository struct {
	db *gorm.DB
}

// NewQAMemberRepository 创建 QA 审核员仓储
func NewQAMemberRepository(db *gorm.DB) QAMemberRepository {
	return &qaMemberRepository{db: db}
}

// Save 保存 QA 审核员
func (r *qaMemberRepository) Save(member *model.QAMember) error {
	return r.db.Save(member).Error
}

// FindByID 根据 ID 查找 QA 审核员
func (r *qaMemberRepository) FindByID(id uint) (*model.QAMember, error) {
	var member model.QAMember
	if err := r.db.Where("qa_member_id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
