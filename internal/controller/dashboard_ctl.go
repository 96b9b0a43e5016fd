package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/service"
)

// ==================== DashboardController 仪表盘控制器 ====================

// DashboardController 仪表盘控制器
type DashboardController struct {
	dashboardService *service.DashboardService
}

// NewDashboardController 创建仪表盘控制器
func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats 仪表盘指标
// @Summary 仪表盘指标
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	stats, err := c.dashboardService.Stats(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": stats,
	})
}
