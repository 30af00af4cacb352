package model

// Language 语言数据模型
type Language struct {
	LanguageID   uint   `gorm:"column:language_id;primaryKey;autoIncrement" json:"language_id"`
	LanguageName string `gorm:"column:language_name;not null;uniqueIndex" json:"language_name"`
}

// TableName 指定表名
func (Language) TableName() string {
	return "language"
}
