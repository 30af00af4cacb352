package model

// Freelancer 译员数据模型
// 收入字段只由 QA 审核通过和提现流程变更
type Freelancer struct {
	FreelancerID      uint    `gorm:"column:freelancer_id;primaryKey;autoIncrement" json:"freelancer_id"`
	FullName          string  `gorm:"column:full_name;not null" json:"full_name"`
	Email             string  `gorm:"column:email;not null;uniqueIndex" json:"email"`
	TotalEarnings     float64 `gorm:"column:total_earnings;not null;default:0" json:"total_earnings"`
	TotalWithdrawn    float64 `gorm:"column:total_withdrawn;not null;default:0" json:"total_withdrawn"`
	CurrentBalance    float64 `gorm:"column:current_balance;not null;default:0" json:"current_balance"`
	PendingWithdrawal float64 `gorm:"column:pending_withdrawal;not null;default:0" json:"pending_withdrawal"`
}

// TableName 指定表名
func (Freelancer) TableName() string {
	return "freelancer"
}
