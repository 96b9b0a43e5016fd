package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== TransferController 流水控制器 ====================

// TransferController 收款流水控制器
type TransferController struct {
	transferService *service.TransferService
}

// NewTransferController 创建流水控制器
func NewTransferController(transferService *service.TransferService) *TransferController {
	return &TransferController{transferService: transferService}
}

// List 流水列表
// @Summary 流水列表
// @Tags Transfer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transfer
// @Router /transfers [get]
func (c *TransferController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	transfers, err := c.transferService.List(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": transfers,
	})
}

// Create 手工录入流水
// @Summary 手工录入流水
// @Tags Transfer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferRequest true "流水信息"
// @Success 200 {object} model.Transfer
// @Failure 400 {object} map[string]interface{}
// @Router /transfers [post]
func (c *TransferController) Create(ctx *gin.Context) {
	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	transfer, err := c.transferService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    transfer,
	})
}

// Import 批量导入流水
// @Summary 批量导入流水
// @Tags Transfer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferImportRequest true "流水列表"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /transfers/import [post]
func (c *TransferController) Import(ctx *gin.Context) {
	var req dto.TransferImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	batch, count, err := c.transferService.Import(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "导入成功",
		"data": gin.H{
			"import_batch": batch,
			"count":        count,
		},
	})
}

// Update 更新流水
// @Summary 更新流水
// @Tags Transfer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "流水ID"
// @Param request body dto.TransferRequest true "流水信息"
// @Success 200 {object} model.Transfer
// @Failure 404 {object} map[string]interface{}
// @Router /transfers/{id} [put]
func (c *TransferController) Update(ctx *gin.Context) {
	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的流水ID",
		})
		return
	}

	transfer, err := c.transferService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    transfer,
	})
}

// Delete 删除流水
// @Summary 删除流水
// @Tags Transfer
// @Produce json
// @Security BearerAuth
// @Param id path int true "流水ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /transfers/{id} [delete]
func (c *TransferController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的流水ID",
		})
		return
	}

	if err := c.transferService.Delete(ctx.Request.Context(), userID, id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// AssignInvoice 批量开票
// @Summary 批量开票
// @Tags Transfer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InvoiceAssignRequest true "流水ID列表和发票号"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /transfers/invoices [post]
func (c *TransferController) AssignInvoice(ctx *gin.Context) {
	var req dto.InvoiceAssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	affected, err := c.transferService.AssignInvoice(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "开票成功",
		"data": gin.H{
			"affected": affected,
		},
	})
}

// ListInvoices 发票分组列表
// @Summary 发票分组列表
// @Tags Transfer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InvoiceGroup
// @Router /transfers/invoices [get]
func (c *TransferController) ListInvoices(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	groups, err := c.transferService.ListInvoices(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": groups,
	})
}
