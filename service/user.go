package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// UserService 用户注册、登录与管理。
// 注册允许自选 rep/manager/admin 三种角色之一；
// 管理端的创建与列表仅限 admin。角色一经指定不可修改（不提供更新入口）。
type UserService struct {
	users repository.UserStore
}

// NewUserService 创建用户服务
func NewUserService(users repository.UserStore) *UserService {
	return &UserService{users: users}
}

// Register 注册新用户并签发登录令牌
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, *utils.ApiError) {
	if !models.IsValidRole(req.Role) {
		return nil, utils.CreateBadRequestError("无效的角色: " + string(req.Role))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.CreateBadRequestError(err.Error())
	}

	user := &models.User{
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.CreateEmailExistsError(user.Email)
		}
		return nil, utils.CreateStoreUnavailableError(err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, utils.CreateBadRequestError("生成登录令牌失败")
	}

	utils.LogInfo(map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	}, "用户注册成功")

	sanitized := *user
	sanitized.Password = ""
	return &models.LoginResponse{Token: token, User: &sanitized}, nil
}

// Login 邮箱加密码登录，邮箱大小写不敏感
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *utils.ApiError) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// 不区分邮箱不存在与密码错误
			return nil, utils.CreateUnauthorizedError("邮箱或密码错误")
		}
		return nil, utils.CreateStoreUnavailableError(err)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.LogInfo(map[string]interface{}{"email": req.Email}, "登录失败: 密码错误")
		return nil, utils.CreateUnauthorizedError("邮箱或密码错误")
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, utils.CreateBadRequestError("生成登录令牌失败")
	}

	utils.LogInfo(map[string]interface{}{"email": user.Email}, "用户登录成功")

	sanitized := *user
	sanitized.Password = ""
	return &models.LoginResponse{Token: token, User: &sanitized}, nil
}

// CreateUser 管理员创建用户，允许指定任意角色
func (s *UserService) CreateUser(ctx context.Context, caller *models.Caller, req *models.CreateUserRequest) (*models.User, *utils.ApiError) {
	if apiErr := Authorize(caller, OpManageUsers, ""); apiErr != nil {
		return nil, apiErr
	}

	if !models.IsValidRole(req.Role) {
		return nil, utils.CreateBadRequestError("无效的角色: " + string(req.Role))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.CreateBadRequestError(err.Error())
	}

	user := &models.User{
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.CreateEmailExistsError(user.Email)
		}
		return nil, utils.CreateStoreUnavailableError(err)
	}

	utils.LogInfo(map[string]interface{}{
		"email":   user.Email,
		"role":    user.Role,
		"creator": caller.ID,
	}, "管理员创建用户成功")

	sanitized := *user
	sanitized.Password = ""
	return &sanitized, nil
}

// ListUsers 管理员获取用户列表，不返回密码
func (s *UserService) ListUsers(ctx context.Context, caller *models.Caller) ([]models.User, *utils.ApiError) {
	if apiErr := Authorize(caller, OpManageUsers, ""); apiErr != nil {
		return nil, apiErr
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, utils.CreateStoreUnavailableError(err)
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}
