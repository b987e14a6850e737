package controllers

import (
	"net/http"

	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// DashboardController 数据看板接口
type DashboardController struct {
	dashboard *service.DashboardService
}

// NewDashboardController 创建看板控制器
func NewDashboardController(dashboard *service.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// Stats 获取数据看板统计信息
func (ctl *DashboardController) Stats(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	stats, apiErr := ctl.dashboard.Stats(c.Request.Context(), caller)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats}, "")
}
