package model

// QAMember QA 审核员数据模型
// 两个累计计数只由审核提交流程递增
type QAMember struct {
	QAMemberID         uint   `gorm:"column:qa_member_id;primaryKey;autoIncrement" json:"qa_member_id"`
	FullName           string `gorm:"column:full_name;not null" json:"full_name"`
	Email              string `gorm:"column:email;not null;uniqueIndex" json:"email"`
	TotalTasksReviewed int    `gorm:"column:total_tasks_reviewed;not null;default:0" json:"total_tasks_reviewed"`
	TotalTasksRejected int    `gorm:"column:total_tasks_rejected;not null;default:0" json:"total_tasks_rejected"`
}

// TableName 指定表名
func (QAMember) TableName() string {
	return "qa_member"
}
