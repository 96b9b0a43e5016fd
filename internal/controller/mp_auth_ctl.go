package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== MPAuthController MP 绑定控制器 ====================

// MPAuthController Mercado Pago OAuth 绑定控制器
// 回调接口面向 MP 的浏览器跳转，结果通过前端 URL 的 query 参数回传
type MPAuthController struct {
	mpAuthService *service.MPAuthService
	frontendURL   string
}

// NewMPAuthController 创建 MP 绑定控制器
func NewMPAuthController(mpAuthService *service.MPAuthService, frontendURL string) *MPAuthController {
	return &MPAuthController{
		mpAuthService: mpAuthService,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
	}
}

// Link 发起绑定
// @Summary 发起 MP 账号绑定
// @Tags MercadoPago
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LinkResponse
// @Failure 500 {object} map[string]interface{}
// @Router /mp/link [post]
func (c *MPAuthController) Link(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	authURL, err := c.mpAuthService.BeginLink(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": gin.H{
			"auth_url": authURL,
		},
	})
}

// Callback 授权回调
// MP 跳回来的浏览器请求，无 JWT。结果一律 302 回前端配置页，
// 成功带 ?success=mp_connected，失败带 ?error=<code>
// @Summary MP 授权回调
// @Tags MercadoPago
// @Param code query string false "授权码"
// @Param state query string false "CSRF state"
// @Param error query string false "MP 带回的错误"
// @Success 302
// @Router /mp/callback [get]
func (c *MPAuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")
	errParam := ctx.Query("error")

	err := c.mpAuthService.CompleteLink(ctx.Request.Context(), code, state, errParam)
	if err != nil {
		ctx.Redirect(http.StatusFound, c.frontendURL+"/configuracion?error="+callbackErrorCode(err))
		return
	}

	ctx.Redirect(http.StatusFound, c.frontendURL+"/configuracion?success=mp_connected")
}

// Disconnect 解绑
// @Summary 解绑 MP 账号
// @Tags MercadoPago
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /mp/link [delete]
func (c *MPAuthController) Disconnect(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.mpAuthService.Disconnect(ctx.Request.Context(), userID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "解绑成功",
	})
}

// callbackErrorCode 把服务层错误映射成前端可识别的错误码
func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrProviderDenied):
		return "access_denied"
	case errors.Is(err, service.ErrMissingParams):
		return "missing_params"
	case errors.Is(err, service.ErrInvalidState):
		return "invalid_state"
	case strings.Contains(err.Error(), "兑换 Token"):
		return "exchange_failed"
	default:
		return "db_error"
	}
}
