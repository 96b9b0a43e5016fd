package mercadopago

import "encoding/json"

// ==========================================
// DTO: 对应 Mercado Pago API 的原始 JSON 结构
// ==========================================

// TokenResp OAuth Token 响应
// POST /oauth/token (authorization_code / refresh_token 两种 grant 共用)
type TokenResp struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
	PublicKey    string `json:"public_key"`
	LiveMode     bool   `json:"live_mode"`
}

// tokenReq Token 交换请求体 (MP 接受 JSON body)
type tokenReq struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
}

// StoreLocation 店铺地址
// latitude/longitude MP 要求必填，前端不采集，统一落在默认坐标上
type StoreLocation struct {
	StreetNumber string  `json:"street_number"`
	StreetName   string  `json:"street_name"`
	CityName     string  `json:"city_name"`
	StateName    string  `json:"state_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Reference    string  `json:"reference,omitempty"`
}

// StoreCreateReq 创建店铺请求
// POST /users/{user_id}/stores
type StoreCreateReq struct {
	Name       string        `json:"name"`
	ExternalID string        `json:"external_id"`
	Location   StoreLocation `json:"location"`
}

// StoreResp 店铺资源
type StoreResp struct {
	ID         json.Number    `json:"id"` // 搜索接口返回数字，创建接口可能返回字符串，用 json.Number 兼容两者
	Name       string         `json:"name"`
	ExternalID string         `json:"external_id"`
	Location   *StoreLocation `json:"location,omitempty"`
}

// StoreSearchResp 店铺搜索响应
// GET /users/{user_id}/stores/search?external_id=
type StoreSearchResp struct {
	Results []StoreResp `json:"results"`
	Paging  Paging      `json:"paging"`
}

// PosCreateReq 创建 POS 请求
// POST /pos
type PosCreateReq struct {
	Name        string      `json:"name"`
	StoreID     json.Number `json:"store_id"`
	ExternalID  string      `json:"external_id"`
	FixedAmount bool        `json:"fixed_amount"`
}

// PosUpdateReq 更新 POS 请求 (409 和解时只改 store 归属)
// PUT /pos/{id}
type PosUpdateReq struct {
	StoreID json.Number `json:"store_id,omitempty"`
	Name    string      `json:"name,omitempty"`
}

// PosQR POS 自带的收款二维码
type PosQR struct {
	Image       string `json:"image"`
	TemplateDoc string `json:"template_document,omitempty"`
	TemplateImg string `json:"template_image,omitempty"`
}

// PosResp POS 资源
type PosResp struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	ExternalID  string      `json:"external_id"`
	StoreID     json.Number `json:"store_id"`
	FixedAmount bool        `json:"fixed_amount"`
	QR          *PosQR      `json:"qr,omitempty"`
	QRCode      string      `json:"qr_code,omitempty"`
}

// PosSearchResp POS 搜索响应
// GET /pos?external_id=
type PosSearchResp struct {
	Results []PosResp `json:"results"`
	Paging  Paging    `json:"paging"`
}

// Paging 通用分页
type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// OrderItem 订单行项目
type OrderItem struct {
	ExternalCode string  `json:"external_code"`
	Category     string  `json:"category"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	UnitMeasure  string  `json:"unit_measure"`
	TotalAmount  float64 `json:"total_amount"`
	CurrencyID   string  `json:"currency_id"`
}

// OrderReq QR 订单请求
// PUT /instore/qr/seller/collectors/{user_id}/stores/{store_ext_id}/pos/{pos_ext_id}/orders
type OrderReq struct {
	ExternalReference string      `json:"external_reference"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	TotalAmount       float64     `json:"total_amount"`
	Items             []OrderItem `json:"items"`
}

// OrderResp 订单响应 (PUT 多数情况返回 204 无 body)
type OrderResp struct {
	QRData string `json:"qr_data,omitempty"`
}

// PrefItem Checkout 偏好行项目
type PrefItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// PrefBackURLs 支付完成后的跳转地址
type PrefBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceReq 创建 Checkout 偏好请求
// POST /checkout/preferences
type PreferenceReq struct {
	Items      []PrefItem   `json:"items"`
	BackURLs   PrefBackURLs `json:"back_urls"`
	AutoReturn string       `json:"auto_return,omitempty"`
}

// PreferenceResp Checkout 偏好响应
type PreferenceResp struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// ErrorResp MP 通用错误响应
type ErrorResp struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Causes  []any  `json:"causes,omitempty"`
}
