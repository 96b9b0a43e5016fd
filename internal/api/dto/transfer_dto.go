package dto

import "time"

// ==================== 收款流水 ====================

// TransferRequest 新建/更新流水请求
type TransferRequest struct {
	MPTransactionID string    `json:"mp_transaction_id" binding:"max=100"`
	Amount          float64   `json:"amount" binding:"required,gt=0"`
	Description     string    `json:"description" binding:"max=500"`
	PayerName       string    `json:"payer_name" binding:"max=255"`
	PaymentMethod   string    `json:"payment_method" binding:"max=50"`
	TransactionDate time.Time `json:"transaction_date" binding:"required"`
}

// TransferImportRequest 批量导入流水
type TransferImportRequest struct {
	Transfers []TransferRequest `json:"transfers" binding:"required,min=1,dive"`
}

// InvoiceAssignRequest 批量开票请求
type InvoiceAssignRequest struct {
	TransferIDs   []int64 `json:"transfer_ids" binding:"required,min=1"`
	InvoiceNumber string  `json:"invoice_number" binding:"required,max=50"`
}

// InvoiceGroup 按发票号聚合的一组流水
type InvoiceGroup struct {
	InvoiceNumber string    `json:"invoice_number"`
	Total         float64   `json:"total"`
	Count         int       `json:"count"`
	Date          time.Time `json:"date"` // 组内最近一次更新时间
}
