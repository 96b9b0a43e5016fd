package mercadopago

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// 默认站点
const (
	DefaultAPIBaseURL  = "https://api.mercadopago.com"
	DefaultAuthBaseURL = "https://auth.mercadopago.com.ar"
)

// Config 客户端配置
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIBaseURL   string        // 留空用生产站点，测试时指向 httptest
	AuthBaseURL  string        // 授权跳转站点
	Timeout      time.Duration // 默认 10s
}

// Client Mercado Pago API 客户端
// 所有出站请求的统一入口；access token 按调用传入，客户端本身无状态
type Client struct {
	cfg  Config
	http *resty.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultAuthBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Easypay-Go-App/1.0").
		SetHeader("Content-Type", "application/json")

	return &Client{cfg: cfg, http: httpClient}
}

// ==================== OAuth ====================

// AuthorizationURL 拼接用户授权跳转链接
func (c *Client) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.ClientID)
	params.Set("response_type", "code")
	params.Set("platform_id", "mp")
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("state", state)
	return c.cfg.AuthBaseURL + "/authorization?" + params.Encode()
}

// ExchangeCode 授权码换 Token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResp, error) {
	return c.requestToken(ctx, tokenReq{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		GrantType:    "authorization_code",
		Code:         code,
		RedirectURI:  c.cfg.RedirectURI,
	})
}

// RefreshToken 用 refresh_token 换新 Token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResp, error) {
	return c.requestToken(ctx, tokenReq{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		GrantType:    "refresh_token",
		RefreshToken: refreshToken,
	})
}

func (c *Client) requestToken(ctx context.Context, body tokenReq) (*TokenResp, error) {
	var out TokenResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/oauth/token")
	if err != nil {
		return nil, fmt.Errorf("请求 MP Token 接口失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &out, nil
}

// ==================== Store (Sucursal) ====================

// SearchStore 按 external_id 查店铺，未找到返回 nil
// 部分账号下查无店铺时 MP 直接回 404 而不是空结果集，同样按未找到处理
func (c *Client) SearchStore(ctx context.Context, accessToken string, mpUserID int64, externalID string) (*StoreResp, error) {
	var out StoreSearchResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("external_id", externalID).
		SetResult(&out).
		Get(fmt.Sprintf("/users/%d/stores/search", mpUserID))
	if err != nil {
		return nil, fmt.Errorf("搜索店铺失败: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	return &out.Results[0], nil
}

// ListStores 列出全部店铺
func (c *Client) ListStores(ctx context.Context, accessToken string, mpUserID int64) ([]StoreResp, error) {
	var out StoreSearchResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&out).
		Get(fmt.Sprintf("/users/%d/stores/search", mpUserID))
	if err != nil {
		return nil, fmt.Errorf("列出店铺失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return out.Results, nil
}

// CreateStore 创建店铺
func (c *Client) CreateStore(ctx context.Context, accessToken string, mpUserID int64, req *StoreCreateReq) (*StoreResp, error) {
	var out StoreResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/users/%d/stores", mpUserID))
	if err != nil {
		return nil, fmt.Errorf("创建店铺失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &out, nil
}

// DeleteStore 删除店铺 (MP 内部数字 ID)
func (c *Client) DeleteStore(ctx context.Context, accessToken string, mpUserID int64, storeID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Delete(fmt.Sprintf("/users/%d/stores/%s", mpUserID, storeID))
	if err != nil {
		return fmt.Errorf("删除店铺失败: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ==================== POS (Caja) ====================

// SearchPos 按 external_id 查 POS，未找到返回 nil
func (c *Client) SearchPos(ctx context.Context, accessToken, externalID string) (*PosResp, error) {
	var out PosSearchResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("external_id", externalID).
		SetResult(&out).
		Get("/pos")
	if err != nil {
		return nil, fmt.Errorf("搜索 POS 失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	return &out.Results[0], nil
}

// ListPos 列出全部 POS
func (c *Client) ListPos(ctx context.Context, accessToken string) ([]PosResp, error) {
	var out PosSearchResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("limit", "100").
		SetResult(&out).
		Get("/pos")
	if err != nil {
		return nil, fmt.Errorf("列出 POS 失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return out.Results, nil
}

// CreatePos 创建 POS
// external_id 在 MP 侧全局唯一，重复创建会报 409，调用方据此走和解分支
func (c *Client) CreatePos(ctx context.Context, accessToken string, req *PosCreateReq) (*PosResp, error) {
	var out PosResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(req).
		SetResult(&out).
		Post("/pos")
	if err != nil {
		return nil, fmt.Errorf("创建 POS 失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &out, nil
}

// UpdatePos 更新 POS
func (c *Client) UpdatePos(ctx context.Context, accessToken string, posID int64, req *PosUpdateReq) (*PosResp, error) {
	var out PosResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(req).
		SetResult(&out).
		Put(fmt.Sprintf("/pos/%d", posID))
	if err != nil {
		return nil, fmt.Errorf("更新 POS 失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &out, nil
}

// DeletePos 删除 POS
func (c *Client) DeletePos(ctx context.Context, accessToken string, posID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Delete(fmt.Sprintf("/pos/%d", posID))
	if err != nil {
		return fmt.Errorf("删除 POS 失败: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ==================== Instore Order (QR 订单) ====================

// PutOrder 发布/替换 POS 上的待支付订单 (PUT 语义，幂等覆盖)
// 204 无 body 与 2xx 带 body 都算成功
func (c *Client) PutOrder(ctx context.Context, accessToken string, mpUserID int64, storeExtID, posExtID string, req *OrderReq) (*OrderResp, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(req).
		Put(fmt.Sprintf("/instore/qr/seller/collectors/%d/stores/%s/pos/%s/orders", mpUserID, storeExtID, posExtID))
	if err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	var out OrderResp
	if resp.StatusCode() != http.StatusNoContent && len(resp.Body()) > 0 {
		// body 解析失败不视为错误，订单已在 MP 侧生效
		_ = json.Unmarshal(resp.Body(), &out)
	}
	return &out, nil
}

// DeleteOrder 删除 POS 上的待支付订单
// 404/400 表示本来就没有可删的订单，视为成功
func (c *Client) DeleteOrder(ctx context.Context, accessToken string, mpUserID int64, posExtID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Delete(fmt.Sprintf("/instore/orders/qr/seller/collectors/%d/pos/%s/qrs", mpUserID, posExtID))
	if err != nil {
		return fmt.Errorf("删除订单失败: %w", err)
	}
	if resp.IsError() &&
		resp.StatusCode() != http.StatusNotFound &&
		resp.StatusCode() != http.StatusBadRequest {
		return newAPIError(resp)
	}
	return nil
}

// ==================== Checkout Preference ====================

// CreatePreference 创建 Checkout 支付偏好 (线上支付链接)
func (c *Client) CreatePreference(ctx context.Context, accessToken string, req *PreferenceReq) (*PreferenceResp, error) {
	var out PreferenceResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(req).
		SetResult(&out).
		Post("/checkout/preferences")
	if err != nil {
		return nil, fmt.Errorf("创建支付偏好失败: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &out, nil
}

// ==================== 内部 ====================

func newAPIError(resp *resty.Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
}
