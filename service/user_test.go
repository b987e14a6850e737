package service_test

import (
	"context"
	"testing"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserEnv() (*service.UserService, *repository.MemoryUserStore) {
	store := repository.NewMemoryUserStore()
	return service.NewUserService(store), store
}

// TestRegister 注册成功：密码只存哈希、邮箱归一为小写、返回可用令牌
func TestRegister(t *testing.T) {
	svc, store := newUserEnv()

	resp, apiErr := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "张三",
		Email:    "Zhang.San@Example.COM",
		Password: "secret123",
		Role:     models.UserRoleREP,
	})
	require.Nil(t, apiErr)

	assert.Equal(t, "zhang.san@example.com", resp.User.Email)
	assert.Empty(t, resp.User.Password)
	assert.NotEmpty(t, resp.Token)

	// 存储中的密码是bcrypt哈希而非明文
	stored, err := store.FindByEmail(context.Background(), "zhang.san@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, utils.VerifyPassword("secret123", stored.Password))

	// 令牌能还原出正确身份
	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	caller, err := utils.CallerFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), caller.ID)
	assert.Equal(t, models.UserRoleREP, caller.Role)
}

// TestRegisterInvalidRole 角色不在固定集合内拒绝注册
func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := newUserEnv()

	_, apiErr := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "李四",
		Email:    "lisi@example.com",
		Password: "secret123",
		Role:     models.UserRole("superuser"),
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeBadRequest, apiErr.ErrorCode)
}

// TestRegisterDuplicateEmail 邮箱唯一性大小写不敏感
func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserEnv()

	_, apiErr := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "王五",
		Email:    "wangwu@example.com",
		Password: "secret123",
		Role:     models.UserRoleREP,
	})
	require.Nil(t, apiErr)

	_, apiErr = svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "王五二号",
		Email:    "WangWu@Example.com",
		Password: "secret456",
		Role:     models.UserRoleMANAGER,
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeEmailExists, apiErr.ErrorCode)
}

// TestLogin 登录校验：邮箱大小写不敏感；错误密码与不存在的邮箱返回同样的拒绝
func TestLogin(t *testing.T) {
	svc, _ := newUserEnv()

	_, apiErr := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "赵六",
		Email:    "zhaoliu@example.com",
		Password: "secret123",
		Role:     models.UserRoleMANAGER,
	})
	require.Nil(t, apiErr)

	resp, apiErr := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ZhaoLiu@Example.com",
		Password: "secret123",
	})
	require.Nil(t, apiErr)
	assert.Equal(t, models.UserRoleMANAGER, resp.User.Role)

	_, apiErr = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "zhaoliu@example.com",
		Password: "wrong-password",
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeUnauthorized, apiErr.ErrorCode)

	_, apiErr2 := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	require.NotNil(t, apiErr2)
	// 不区分邮箱不存在与密码错误
	assert.Equal(t, apiErr.Message, apiErr2.Message)
}

// TestCreateUserAdminOnly 管理端创建用户仅限 admin
func TestCreateUserAdminOnly(t *testing.T) {
	svc, _ := newUserEnv()
	admin := newCaller(models.UserRoleADMIN)

	req := &models.CreateUserRequest{
		Name:     "新同事",
		Email:    "newbie@example.com",
		Password: "secret123",
		Role:     models.UserRoleADMIN,
	}

	for _, role := range []models.UserRole{models.UserRoleREP, models.UserRoleMANAGER} {
		_, apiErr := svc.CreateUser(context.Background(), newCaller(role), req)
		require.NotNil(t, apiErr, "角色 %s 不应有用户管理权限", role)
		assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)
	}

	user, apiErr := svc.CreateUser(context.Background(), admin, req)
	require.Nil(t, apiErr)
	assert.Equal(t, models.UserRoleADMIN, user.Role)
	assert.Empty(t, user.Password)
}

// TestListUsersAdminOnly 用户列表仅限 admin，且不返回密码
func TestListUsersAdminOnly(t *testing.T) {
	svc, _ := newUserEnv()
	admin := newCaller(models.UserRoleADMIN)

	_, apiErr := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "成员甲",
		Email:    "member-a@example.com",
		Password: "secret123",
		Role:     models.UserRoleREP,
	})
	require.Nil(t, apiErr)

	_, apiErr = svc.ListUsers(context.Background(), newCaller(models.UserRoleMANAGER))
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)

	users, apiErr := svc.ListUsers(context.Background(), admin)
	require.Nil(t, apiErr)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}
