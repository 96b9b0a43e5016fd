package model

import "time"

// Transfer 收款流水 (MP 转账/收款记录)
type Transfer struct {
	BaseModel
	AuditMixin
	UserID int64 `gorm:"index;not null"`

	MPTransactionID string    `gorm:"size:100;index"` // MP 侧交易号
	Amount          float64   `gorm:"type:decimal(12,2);not null"`
	Description     string    `gorm:"size:500"`
	PayerName       string    `gorm:"size:255"`
	PaymentMethod   string    `gorm:"size:50"`
	TransactionDate time.Time `gorm:"index"`

	// 开票状态：勾选若干笔流水合并开一张发票
	Invoiced      bool   `gorm:"default:false;index"`
	InvoiceNumber string `gorm:"size:50;index"`

	// ImportBatch 批量导入批次号 (uuid)，同一次对账导入的流水共享
	ImportBatch string `gorm:"size:36;index"`
}

func (Transfer) TableName() string {
	return "transfers"
}
