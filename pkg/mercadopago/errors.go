package mercadopago

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError MP 非 2xx 响应
// 保留原始 body 方便排查，返回给前端前需要做脱敏
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadopago: 状态码 %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized Token 失效/权限不足，调用方应引导用户重新授权
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsConflict external_id 冲突 (资源已存在)
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusConflict
}

// IsNotFound 资源不存在
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound
}
