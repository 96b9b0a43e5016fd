package dto

// ==================== 销售记录 ====================

// SaleRequest 新建/更新销售请求
// total 不由前端传，后端按 quantity * unit_price 计算
type SaleRequest struct {
	ClientName  string  `json:"client_name" binding:"max=255"`
	ClientEmail string  `json:"client_email" binding:"omitempty,email"`
	ClientPhone string  `json:"client_phone" binding:"max=50"`
	Description string  `json:"description" binding:"required,max=500"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"max=100"`
	Notes       string  `json:"notes"`
}
