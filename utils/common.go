package utils

import (
	"fmt"

	"github.com/BerniceZTT/pipeline_end/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// GetUser 从请求上下文中取出已验证的请求者身份
func GetUser(c *gin.Context) (*models.Caller, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("未授权访问")
	}

	switch v := currentUser.(type) {
	case *models.Caller:
		return v, nil
	case jwt.MapClaims:
		return CallerFromClaims(v)
	default:
		return nil, fmt.Errorf("无法识别的用户信息格式")
	}
}
