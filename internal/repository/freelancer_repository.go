package repository

import (
	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"gorm.io/gorm"
)

// FreelancerRepository 译员仓储接口
type FreelancerRepository interface {
	Save(freelancer *model.Freelancer) error
	FindByID(id uint) (*model.Freelancer, error)
}

// freelancerRepository 译员仓储实现
type freelancerRepository struct {
	db *gorm.DB
}

// NewFreelancerRepository 创建译员仓储
func NewFreelancerRepository(db *gorm.DB) FreelancerRepository {
	return &freelancerRepository{db: db}
}

// Save 保存译员
func (r *freelancerRepository) Save(freelancer *model.Freelancer) error {
	return r.db.Save(freelancer).Error
}

// FindByID 根据 ID 查找译员
func (r *freelancerRepository) FindByID(id uint) (*model.Freelancer, error) {
	var freelancer model.Freelancer
	if err := r.db.Where("freelancer_id = ?", id).First(&freelancer).Error; err != nil {
		return nil, err
	}
	return &freelancer, nil
}
