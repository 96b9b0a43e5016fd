package model

// Client 客户档案
type Client struct {
	BaseModel
	AuditMixin
	UserID int64 `gorm:"index;not null"` // 归属商户

	Name    string `gorm:"size:255;not null"`
	Email   string `gorm:"size:255"`
	Phone   string `gorm:"size:50"`
	DNI     string `gorm:"size:20"` // 个人税号
	// gorm 会把 CUIT 里的 UI 当缩写拆成 c_ui_t，锁死列名
	CUIT    string `gorm:"column:cuit;size:20"` // 企业税号
	Address string `gorm:"size:255"`
	Notes   string `gorm:"type:text"`
}

func (Client) TableName() string {
	return "clients"
}
