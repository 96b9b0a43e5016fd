package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== OrderController 收款订单控制器 ====================

// OrderController QR 收款订单控制器
type OrderController struct {
	orderService    *service.OrderService
	terminalService *service.TerminalService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService, terminalService *service.TerminalService) *OrderController {
	return &OrderController{
		orderService:    orderService,
		terminalService: terminalService,
	}
}

// CreateOrder 挂载收款订单
// @Summary 在 POS 上挂载收款订单
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "金额与终端信息"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]interface{}
// @Router /mp/orders [put]
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	resp, err := c.orderService.CreateOrder(ctx.Request.Context(), cred, &req)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": resp,
	})
}

// DeleteOrder 撤销收款订单
// @Summary 撤销 POS 上的收款订单
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param external_pos_id query string false "POS 外部 ID，不传用主 POS"
// @Success 200 {object} map[string]interface{}
// @Router /mp/orders [delete]
func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	if err := c.orderService.DeleteOrder(ctx.Request.Context(), cred, ctx.Query("external_pos_id")); err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "订单已撤销",
	})
}

// CreatePreference 创建线上支付链接
// @Summary 创建线上支付链接
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePreferenceRequest true "商品信息"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} map[string]interface{}
// @Router /mp/preferences [post]
func (c *OrderController) CreatePreference(ctx *gin.Context) {
	var req dto.CreatePreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	resp, err := c.orderService.CreatePreference(ctx.Request.Context(), cred, &req)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": resp,
	})
}
