package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== TerminalController 终端控制器 ====================

// TerminalController 店铺/POS 配置控制器
type TerminalController struct {
	terminalService *service.TerminalService
}

// NewTerminalController 创建终端控制器
func NewTerminalController(terminalService *service.TerminalService) *TerminalController {
	return &TerminalController{terminalService: terminalService}
}

// loadCredential 加载当前用户的 MP 凭证，失败时已写响应
func loadCredential(ctx *gin.Context, terminalService *service.TerminalService) (*model.MPCredential, bool) {
	userID := middleware.GetUserID(ctx)
	cred, err := terminalService.LoadCredential(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotLinked) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
			})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": err.Error(),
			})
		}
		return nil, false
	}
	return cred, true
}

// handleMPError 统一的 MP 侧错误响应
func handleMPError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReauthRequired):
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrPrimaryStoreMissing),
		errors.Is(err, service.ErrTerminalNotReady),
		errors.Is(err, service.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{
			"code":    502,
			"message": err.Error(),
		})
	}
}

// GetTerminal 终端状态
// @Summary 终端状态发现
// @Tags Terminal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TerminalResponse
// @Failure 400 {object} map[string]interface{}
// @Router /mp/terminal [get]
func (c *TerminalController) GetTerminal(ctx *gin.Context) {
	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	resp, err := c.terminalService.GetTerminalData(ctx.Request.Context(), cred)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": resp,
	})
}

// CreateStore 创建店铺和主 POS
// @Summary 创建店铺和主 POS
// @Tags Terminal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "店铺信息"
// @Success 200 {object} dto.TerminalResponse
// @Failure 400 {object} map[string]interface{}
// @Router /mp/stores [post]
func (c *TerminalController) CreateStore(ctx *gin.Context) {
	var req dto.CreateStoreRequest
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

	resp, err := c.terminalService.CreateStoreAndPos(ctx.Request.Context(), cred, &req)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "店铺配置成功",
		"data":    resp,
	})
}

// ListStores 店铺列表
// @Summary 店铺列表
// @Tags Terminal
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StoreInfo
// @Router /mp/stores [get]
func (c *TerminalController) ListStores(ctx *gin.Context) {
	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	stores, err := c.terminalService.ListStores(ctx.Request.Context(), cred)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": stores,
	})
}

// DeleteStore 删除店铺
// @Summary 删除店铺
// @Tags Terminal
// @Produce json
// @Security BearerAuth
// @Param id path string true "店铺ID"
// @Success 200 {object} map[string]interface{}
// @Router /mp/stores/{id} [delete]
func (c *TerminalController) DeleteStore(ctx *gin.Context) {
	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	if err := c.terminalService.DeleteStore(ctx.Request.Context(), cred, ctx.Param("id")); err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// CreatePos 创建附加 POS
// @Summary 创建附加 POS
// @Tags Terminal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePosRequest true "POS 信息"
// @Success 200 {object} dto.PosInfo
// @Failure 400 {object} map[string]interface{}
// @Router /mp/pos [post]
func (c *TerminalController) CreatePos(ctx *gin.Context) {
	var req dto.CreatePosRequest
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

	info, err := c.terminalService.CreateAdditionalPos(ctx.Request.Context(), cred, req.Name)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    info,
	})
}

// ListPos POS 列表
// @Summary POS 列表
// @Tags Terminal
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PosInfo
// @Router /mp/pos [get]
func (c *TerminalController) ListPos(ctx *gin.Context) {
	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	posList, err := c.terminalService.ListPos(ctx.Request.Context(), cred)
	if err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": posList,
	})
}

// DeletePos 删除 POS
// @Summary 删除 POS
// @Tags Terminal
// @Produce json
// @Security BearerAuth
// @Param id path int true "POS ID"
// @Success 200 {object} map[string]interface{}
// @Router /mp/pos/{id} [delete]
func (c *TerminalController) DeletePos(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的 POS ID",
		})
		return
	}

	cred, ok := loadCredential(ctx, c.terminalService)
	if !ok {
		return
	}

	if err := c.terminalService.DeletePos(ctx.Request.Context(), cred, id); err != nil {
		handleMPError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}
