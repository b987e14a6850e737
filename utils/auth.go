package utils

import (
	"fmt"
	"time"

	"github.com/BerniceZTT/pipeline_end/config"
	"github.com/BerniceZTT/pipeline_end/models"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword 哈希密码，bcrypt自带随机盐
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(password string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateToken 生成JWT令牌
func GenerateToken(user *models.User) (string, error) {
	Logger.Info().
		Str("_id", user.ID.Hex()).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("开始生成token")

	// 创建JWT Claims
	claims := jwt.MapClaims{
		"id":   user.ID.Hex(),
		"name": user.Name,
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Hour * 24 * 30).Unix(), // 30天有效期
		"iat":  time.Now().Unix(),
	}

	// 创建并签名token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成token失败")
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析和验证JWT令牌
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	// 验证token并提取claims
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("无效的token")
}

// CallerFromClaims 从token负载中还原请求者身份
func CallerFromClaims(claims jwt.MapClaims) (*models.Caller, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("无效的用户ID")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("无效的用户角色")
	}

	name, _ := claims["name"].(string)

	return &models.Caller{
		ID:   id,
		Name: name,
		Role: models.UserRole(role),
	}, nil
}
