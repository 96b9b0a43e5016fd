package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/api/dto"
	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== ClientController 客户控制器 ====================

// ClientController 客户档案控制器
type ClientController struct {
	clientService *service.ClientService
}

// NewClientController 创建客户控制器
func NewClientController(clientService *service.ClientService) *ClientController {
	return &ClientController{clientService: clientService}
}

// List 客户列表
// @Summary 客户列表
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param search query string false "按名称/邮箱/DNI/CUIT 模糊搜索"
// @Success 200 {array} model.Client
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	search := ctx.Query("search")

	clients, err := c.clientService.List(ctx.Request.Context(), userID, search)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": clients,
	})
}

// Get 客户详情
// @Summary 客户详情
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} map[string]interface{}
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的客户ID",
		})
		return
	}

	client, err := c.clientService.Get(ctx.Request.Context(), userID, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": client,
	})
}

// Create 新建客户
// @Summary 新建客户
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClientRequest true "客户信息"
// @Success 200 {object} model.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := middleware.GetUserID(ctx)
	client, err := c.clientService.Create(ctx.Request.Context(), userID, &req)
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
		"data":    client,
	})
}

// Update 更新客户
// @Summary 更新客户
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Param request body dto.ClientRequest true "客户信息"
// @Success 200 {object} model.Client
// @Failure 404 {object} map[string]interface{}
// @Router /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	var req dto.ClientRequest
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
			"message": "无效的客户ID",
		})
		return
	}

	client, err := c.clientService.Update(ctx.Request.Context(), userID, id, &req)
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
		"data":    client,
	})
}

// Delete 删除客户
// @Summary 删除客户
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的客户ID",
		})
		return
	}

	if err := c.clientService.Delete(ctx.Request.Context(), userID, id); err != nil {
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
