package model

// PairStatus 语言对测评状态
type PairStatus string

const (
	PairStatusUnderReview PairStatus = "UNDER_REVIEW"
	PairStatusComplete    PairStatus = "COMPLETE"
)

// FreelancerLanguagePair 译员语言对台账
// 每个 (译员, 源语言, 目标语言) 组合唯一一条记录,
// 由测评子系统创建,之后只能由 QA 审核流程变更计数
type FreelancerLanguagePair struct {
	LanguagePairID   uint       `gorm:"column:language_pair_id;primaryKey;autoIncrement" json:"language_pair_id"`
	FreelancerID     uint       `gorm:"column:freelancer_id;not null;index;uniqueIndex:uniq_pair_per_freelancer" json:"freelancer_id"`
	SourceLanguageID uint       `gorm:"column:source_language_id;not null;index;uniqueIndex:uniq_pair_per_freelancer" json:"source_language_id"`
	TargetLanguageID uint       `gorm:"column:target_language_id;not null;index;uniqueIndex:uniq_pair_per_freelancer" json:"target_language_id"`
	Status           PairStatus `gorm:"column:status;type:varchar(32);not null;default:UNDER_REVIEW" json:"status"`
	AccuracyRate     float64    `gorm:"column:accuracy_rate;not null;default:100" json:"accuracy_rate"`
	CompleteTask     int        `gorm:"column:complete_task;not null;default:0" json:"complete_task"`
	RejectedTask     int        `gorm:"column:rejected_task;not null;default:0" json:"rejected_task"`
}

// TableName 指定表名
func (FreelancerLanguagePair) TableName() string {
	return "freelancer_language_pair"
}
