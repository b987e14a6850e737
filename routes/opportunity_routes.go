package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"
	"github.com/BerniceZTT/pipeline_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterOpportunityRoutes 注册商机相关路由
func RegisterOpportunityRoutes(router *gin.Engine, ctl *controllers.OpportunityController) {
	oppRoutes := router.Group("/api/opportunities")
	oppRoutes.Use(middleware.AuthMiddleware())

	oppRoutes.GET("", ctl.List)
	oppRoutes.POST("", ctl.Create)
	oppRoutes.GET("/:id", ctl.Detail)
	oppRoutes.PUT("/:id", ctl.Update)
	oppRoutes.DELETE("/:id", ctl.Delete)
}
