package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== SaleController 销售控制器 ====================

// SaleController 销售记录控制器
type SaleController struct {
	saleService *service.SaleService
}

// NewSaleController 创建销售控制器
func NewSaleController(saleService *service.SaleService) *SaleController {
	return &SaleController{saleService: saleService}
}

// List 销售列表
// @Summary 销售列表
// @Tags Sale
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Sale
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	sales, err := c.saleService.List(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": sales,
	})
}

// Create 新建销售记录
// @Summary 新建销售记录
// @Tags Sale
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaleRequest true "销售信息"
// @Success 200 {object} model.Sale
// @Failure 400 {object} map[string]interface{}
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	sale, err := c.saleService.Create(ctx.Request.Context(), userID, &req)
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
		"data":    sale,
	})
}

// Update 更新销售记录
// @Summary 更新销售记录
// @Tags Sale
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "销售ID"
// @Param request body dto.SaleRequest true "销售信息"
// @Success 200 {object} model.Sale
// @Failure 404 {object} map[string]interface{}
// @Router /sales/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	var req dto.SaleRequest
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
			"message": "无效的销售ID",
		})
		return
	}

	sale, err := c.saleService.Update(ctx.Request.Context(), userID, id, &req)
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
		"data":    sale,
	})
}

// Delete 删除销售记录
// @Summary 删除销售记录
// @Tags Sale
// @Produce json
// @Security BearerAuth
// @Param id path int true "销售ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的销售ID",
		})
		return
	}

	if err := c.saleService.Delete(ctx.Request.Context(), userID, id); err != nil {
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
