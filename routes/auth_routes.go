package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
func RegisterAuthRoutes(router *gin.Engine, ctl *controllers.AuthController) {
	authRoutes := router.Group("/api/auth")

	authRoutes.POST("/register", ctl.Register)
	authRoutes.POST("/login", ctl.Login)
}
