package controllers

import (
	"net/http"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// AuthController 认证相关接口
type AuthController struct {
	users *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(users *service.UserService) *AuthController {
	return &AuthController{users: users}
}

// Register 用户注册
func (ctl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().
		Str("email", req.Email).
		Str("role", string(req.Role)).
		Msg("注册尝试")

	resp, apiErr := ctl.users.Register(c.Request.Context(), &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": resp.Token,
		"user":  resp.User,
	}, "注册成功", http.StatusCreated)
}

// Login 用户登录
func (ctl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("登录尝试")

	resp, apiErr := ctl.users.Login(c.Request.Context(), &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": resp.Token,
		"user":  resp.User,
	}, "")
}
