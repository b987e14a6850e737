package routes

import (
	"github.com/BerniceZTT/pipeline_end/controllers"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine) {
	// 存储层
	userStore := repository.NewMongoUserStore()
	leadStore := repository.NewMongoLeadStore()
	oppStore := repository.NewMongoOpportunityStore()

	// 服务层
	userService := service.NewUserService(userStore)
	leadService := service.NewLeadService(leadStore)
	oppService := service.NewOpportunityService(oppStore)
	converter := service.NewConversionService(leadStore, oppStore)
	dashboardService := service.NewDashboardService(leadStore, oppStore)

	// 注册认证路由
	RegisterAuthRoutes(router, controllers.NewAuthController(userService))

	// 注册用户管理路由
	RegisterUserRoutes(router, controllers.NewUserController(userService))

	// 注册其他路由
	RegisterLeadRoutes(router, controllers.NewLeadController(leadService, converter))
	RegisterOpportunityRoutes(router, controllers.NewOpportunityController(oppService))
	RegisterDashboardRoutes(router, controllers.NewDashboardController(dashboardService))

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 数据库状态检查路由
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "获取数据库状态失败: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
