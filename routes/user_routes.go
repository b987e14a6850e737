package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"
	"github.com/BerniceZTT/pipeline_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户管理路由，授权在服务层统一判定
func RegisterUserRoutes(router *gin.Engine, ctl *controllers.UserController) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware())

	userRoutes.GET("", ctl.List)
	userRoutes.POST("", ctl.Create)
}
