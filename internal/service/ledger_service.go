package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/itsakphyo/myanlang-translation-platform/internal/model"
	"github.com/itsakphyo/myanlang-translation-platform/internal/repository"
	"gorm.io/gorm"
)

// LedgerService 译员台账查询服务接口
// 暴露语言对资格与收入余额的只读视图
type LedgerService interface {
	GetLanguagePairStanding(ctx context.Context, req *LanguagePairStandingRequest) (*LanguagePairStanding, error)
	GetBalance(ctx context.Context, freelancerID uint) (*FreelancerBalance, error)
	ListLanguagePairs(ctx context.Context, freelancerID uint) ([]*model.FreelancerLanguagePair, error)
}

// LanguagePairStandingRequest 语言对资格查询请求
type LanguagePairStandingRequest struct {
	FreelancerID     uint `form:"freelancer_id" binding:"required"`
	SourceLanguageID uint `form:"source_language_id" binding:"required"`
	TargetLanguageID uint `form:"target_language_id" binding:"required"`
}

// LanguagePairStanding 语言对资格查询结果
// Found 为 false 时其余字段无意义
type LanguagePairStanding struct {
	Found        bool    `json:"-"`
	Status       string  `json:"status"`
	AccuracyRate float64 `json:"accuracy_rate"`
	CompleteTask int     `json:"complete_task"`
	RejectedTask int     `json:"rejected_task"`
}

// FreelancerBalance 译员收入余额快照
type FreelancerBalance struct {
	FreelancerID      uint    `json:"freelancer_id"`
	TotalEarnings     float64 `json:"total_earnings"`
	TotalWithdrawn    float64 `json:"total_withdrawn"`
	CurrentBalance    float64 `json:"current_balance"`
	PendingWithdrawal float64 `json:"pending_withdrawal"`
}

// ledgerService 译员台账查询服务实现
type ledgerService struct {
	pairRepo       repository.LanguagePairRepository
	freelancerRepo repository.FreelancerRepository
}

// NewLedgerService 创建台账查询服务
func NewLedgerService(pairRepo repository.LanguagePairRepository, freelancerRepo repository.FreelancerRepository) LedgerService {
	return &ledgerService{pairRepo: pairRepo, freelancerRepo: freelancerRepo}
}

// GetLanguagePairStanding 查询译员在某语言对上的资格
// 查询不区分方向: 记录可能以任一方向存储。
// 没有记录不是错误,返回 Found=false 由调用方自行表达
func (s *ledgerService) GetLanguagePairStanding(ctx context.Context, req *LanguagePairStandingRequest) (*LanguagePairStanding, error) {
	pair, err := s.pairRepo.FindByPairEitherOrder(req.FreelancerID, req.SourceLanguageID, req.TargetLanguageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LanguagePairStanding{Found: false}, nil
		}
		return nil, fmt.Errorf("failed to load language pair: %w", err)
	}

	return &LanguagePairStanding{
		Found:        true,
		Status:       string(pair.Status),
		AccuracyRate: pair.AccuracyRate,
		CompleteTask: pair.CompleteTask,
		RejectedTask: pair.RejectedTask,
	}, nil
}

// GetBalance 查询译员余额
func (s *ledgerService) GetBalance(ctx context.Context, freelancerID uint) (*FreelancerBalance, error) {
	freelancer, err := s.freelancerRepo.FindByID(freelancerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFreelancerNotFound
		}
		return nil, fmt.Errorf("failed to load freelancer: %w", err)
	}

	return &FreelancerBalance{
		FreelancerID:      freelancer.FreelancerID,
		TotalEarnings:     freelancer.TotalEarnings,
		TotalWithdrawn:    freelancer.TotalWithdrawn,
		CurrentBalance:    freelancer.CurrentBalance,
		PendingWithdrawal: freelancer.PendingWithdrawal,
	}, nil
}

// ListLanguagePairs 查询译员的全部语言对记录
func (s *ledgerService) ListLanguagePairs(ctx context.Context, freelancerID uint) ([]*model.FreelancerLanguagePair, error) {
	if _, err := s.freelancerRepo.FindByID(freelancerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFreelancerNotFound
		}
		return nil, fmt.Errorf("failed to load freelancer: %w", err)
	}
	return s.pairRepo.FindByFreelancer(freelancerID)
}
