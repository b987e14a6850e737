package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"
	"github.com/BerniceZTT/pipeline_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes 注册线索相关路由
func RegisterLeadRoutes(router *gin.Engine, ctl *controllers.LeadController) {
	leadRoutes := router.Group("/api/leads")
	leadRoutes.Use(middleware.AuthMiddleware())

	leadRoutes.GET("", ctl.List)
	leadRoutes.POST("", ctl.Create)
	leadRoutes.GET("/:id", ctl.Detail)
	leadRoutes.PUT("/:id", ctl.Update)
	leadRoutes.DELETE("/:id", ctl.Delete)
	leadRoutes.POST("/:id/convert", ctl.Convert)
}
