package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"
	"github.com/BerniceZTT/pipeline_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes 注册数据看板路由
func RegisterDashboardRoutes(router *gin.Engine, ctl *controllers.DashboardController) {
	dashboardRoutes := router.Group("/api/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware())

	dashboardRoutes.GET("/stats", ctl.Stats)
}
