package controllers

import (
	"net/http"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// UserController 用户管理接口，仅管理员可用
type UserController struct {
	users *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// List 获取所有用户
func (ctl *UserController) List(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	users, apiErr := ctl.users.ListUsers(c.Request.Context(), caller)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"users": users}, "")
}

// Create 创建用户
func (ctl *UserController) Create(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, apiErr := ctl.users.CreateUser(c.Request.Context(), caller, &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user}, "创建用户成功", http.StatusCreated)
}
