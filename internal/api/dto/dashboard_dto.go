package dto

import "github.com/francisconatale/easypay/internal/model"

// ==================== 仪表盘 ====================

// MonthlyPoint 月度收入序列的一个点
type MonthlyPoint struct {
	Month    string  `json:"month"` // YYYY-MM
	Total    float64 `json:"total"`
	Invoiced float64 `json:"invoiced"`
	Pending  float64 `json:"pending"`
}

// MethodPoint 按支付方式的金额分布
type MethodPoint struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

// DashboardResponse 仪表盘聚合指标
type DashboardResponse struct {
	// 流水指标
	TotalAmount    float64 `json:"total_amount"`
	InvoicedAmount float64 `json:"invoiced_amount"`
	PendingAmount  float64 `json:"pending_amount"`
	TotalTransfers int     `json:"total_transfers"`
	InvoicedCount  int     `json:"invoiced_count"`

	// 业务体量
	ClientCount int     `json:"client_count"`
	SalesTotal  float64 `json:"sales_total"`

	// 图表数据
	Monthly  []MonthlyPoint `json:"monthly"`
	ByMethod []MethodPoint  `json:"by_method"`

	// 近期销售
	RecentSales []model.Sale `json:"recent_sales"`

	// MP 绑定状态
	MPLinked bool `json:"mp_linked"`
}
