package utils_test

import (
	"testing"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestHashAndVerifyPassword 哈希不可逆且带随机盐
func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, utils.VerifyPassword("password", hash))
	assert.False(t, utils.VerifyPassword("Password", hash))
	assert.False(t, utils.VerifyPassword("", hash))

	// 相同明文两次哈希结果不同
	hash2, err := utils.HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

// TestTokenRoundTrip 令牌签发后能还原出同一身份
func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{
		ID:   primitive.NewObjectID(),
		Name: "测试经理",
		Role: models.UserRoleMANAGER,
	}

	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)

	caller, err := utils.CallerFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), caller.ID)
	assert.Equal(t, "测试经理", caller.Name)
	assert.Equal(t, models.UserRoleMANAGER, caller.Role)
}

// TestParseTokenRejectsTampered 被篡改或伪造签名的令牌解析失败
func TestParseTokenRejectsTampered(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "测试", Role: models.UserRoleREP}
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)

	_, err = utils.ParseToken(token + "x")
	assert.Error(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID.Hex(),
		"role": string(models.UserRoleADMIN),
	})
	forgedString, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = utils.ParseToken(forgedString)
	assert.Error(t, err)
}

// TestCallerFromClaimsMissingFields 缺少关键字段时拒绝还原身份
func TestCallerFromClaimsMissingFields(t *testing.T) {
	_, err := utils.CallerFromClaims(jwt.MapClaims{"role": "rep"})
	assert.Error(t, err)

	_, err = utils.CallerFromClaims(jwt.MapClaims{"id": primitive.NewObjectID().Hex()})
	assert.Error(t, err)
}
