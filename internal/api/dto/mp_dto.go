package dto

// ==================== Mercado Pago 绑定 ====================

// LinkResponse 发起绑定响应
type LinkResponse struct {
	AuthURL string `json:"auth_url"`
}

// ==================== 终端 (Sucursal / Caja) ====================

// TerminalResponse 终端状态响应
// NeedsSetup 为 true 时其余字段为空，前端引导用户走建店表单
type TerminalResponse struct {
	NeedsSetup bool `json:"needs_setup,omitempty"`
	Success    bool `json:"success,omitempty"`

	State string `json:"state"` // no_store / store_only / store_with_pos

	StoreID       string `json:"store_id,omitempty"`
	StoreName     string `json:"store_name,omitempty"`
	ExternalPosID string `json:"external_pos_id,omitempty"`
	QRImage       string `json:"qr_image,omitempty"`
}

// CreateStoreRequest 创建店铺+主 POS 请求，地址字段全部必填
type CreateStoreRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	StreetName   string `json:"street_name" binding:"required,max=255"`
	StreetNumber string `json:"street_number" binding:"required,max=20"`
	CityName     string `json:"city_name" binding:"required,max=100"`
	StateName    string `json:"state_name" binding:"required,max=100"`
}

// CreatePosRequest 创建附加 POS 请求
type CreatePosRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// PosInfo POS 列表项
type PosInfo struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
	QRImage    string `json:"qr_image,omitempty"`
}

// StoreInfo 店铺列表项
type StoreInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
}

// ==================== 订单 / 收款 ====================

// CreateOrderRequest 创建 QR 订单请求
// pos/store 外部 ID 可不传，后端会先走终端发现流程补齐
type CreateOrderRequest struct {
	Amount          float64 `json:"amount" binding:"required"`
	Description     string  `json:"description" binding:"max=500"`
	ExternalPosID   string  `json:"external_pos_id"`
	ExternalStoreID string  `json:"external_store_id"`
}

// OrderResponse 创建 QR 订单响应
type OrderResponse struct {
	Success           bool   `json:"success"`
	ExternalReference string `json:"external_reference"`
	QRImage           string `json:"qr_image,omitempty"`
	QRData            string `json:"qr_data,omitempty"`
	// Warning 删除旧订单失败时的软告警，不阻断主流程
	Warning string `json:"warning,omitempty"`
}

// CreatePreferenceRequest 创建线上支付链接请求
type CreatePreferenceRequest struct {
	Title string  `json:"title" binding:"required,max=255"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

// PreferenceResponse 线上支付链接响应
type PreferenceResponse struct {
	Success          bool   `json:"success"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}
