package model

// Sale 销售记录
// 客户信息冗余一份快照，客户档案被改动不影响历史账目
type Sale struct {
	BaseModel
	AuditMixin
	UserID int64 `gorm:"index;not null"`

	ClientName  string `gorm:"size:255"`
	ClientEmail string `gorm:"size:255"`
	ClientPhone string `gorm:"size:50"`

	Description string  `gorm:"size:500;not null"`
	Quantity    int     `gorm:"not null;default:1"`
	UnitPrice   float64 `gorm:"type:decimal(12,2);not null"`
	Total       float64 `gorm:"type:decimal(12,2);not null"`
	Category    string  `gorm:"size:100"`
	Notes       string  `gorm:"type:text"`
}

func (Sale) TableName() string {
	return "sales"
}
