package service_test

import (
	"testing"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCaller(role models.UserRole) *models.Caller {
	return &models.Caller{
		ID:   primitive.NewObjectID().Hex(),
		Name: "测试用户",
		Role: role,
	}
}

// TestAuthorizeUpdateMatrix 对所有角色验证实体更新的授权矩阵：
// manager/admin 全量放行，rep 仅限自己名下的实体
func TestAuthorizeUpdateMatrix(t *testing.T) {
	ownerID := primitive.NewObjectID().Hex()

	cases := []struct {
		name    string
		role    models.UserRole
		isOwner bool
		allowed bool
	}{
		{"rep操作自己的实体", models.UserRoleREP, true, true},
		{"rep操作他人的实体", models.UserRoleREP, false, false},
		{"manager操作他人的实体", models.UserRoleMANAGER, false, true},
		{"manager操作自己的实体", models.UserRoleMANAGER, true, true},
		{"admin操作他人的实体", models.UserRoleADMIN, false, true},
		{"admin操作自己的实体", models.UserRoleADMIN, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caller := newCaller(tc.role)
			target := ownerID
			if tc.isOwner {
				target = caller.ID
			}

			apiErr := service.Authorize(caller, service.OpUpdate, target)
			if tc.allowed {
				assert.Nil(t, apiErr)
			} else {
				require.NotNil(t, apiErr)
				assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)
			}
		})
	}
}

// TestAuthorizeCreateAlwaysAllowed 三种已知角色都可以创建实体
func TestAuthorizeCreateAlwaysAllowed(t *testing.T) {
	for _, role := range []models.UserRole{models.UserRoleREP, models.UserRoleMANAGER, models.UserRoleADMIN} {
		assert.Nil(t, service.Authorize(newCaller(role), service.OpCreate, ""))
	}
}

// TestAuthorizeManageUsers 用户管理仅限 admin
func TestAuthorizeManageUsers(t *testing.T) {
	assert.Nil(t, service.Authorize(newCaller(models.UserRoleADMIN), service.OpManageUsers, ""))

	for _, role := range []models.UserRole{models.UserRoleREP, models.UserRoleMANAGER} {
		apiErr := service.Authorize(newCaller(role), service.OpManageUsers, "")
		require.NotNil(t, apiErr)
		assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)
	}
}

// TestAuthorizeUnknownRoleDeniesEverything 未识别的角色拒绝一切操作，包括读
func TestAuthorizeUnknownRoleDeniesEverything(t *testing.T) {
	caller := newCaller(models.UserRole("superuser"))

	ops := []service.Operation{
		service.OpCreate, service.OpRead, service.OpUpdate,
		service.OpDelete, service.OpList, service.OpConvert, service.OpManageUsers,
	}
	for _, op := range ops {
		apiErr := service.Authorize(caller, op, caller.ID)
		require.NotNil(t, apiErr, "操作 %s 应被拒绝", op)
		assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)
	}
}

// TestAuthorizeNilCaller 缺少身份直接判未授权
func TestAuthorizeNilCaller(t *testing.T) {
	apiErr := service.Authorize(nil, service.OpRead, "")
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeUnauthorized, apiErr.ErrorCode)
}

// TestAuthorizeRepSelfScopedList rep 可以发起自身范围的列表查询
func TestAuthorizeRepSelfScopedList(t *testing.T) {
	caller := newCaller(models.UserRoleREP)
	assert.Nil(t, service.Authorize(caller, service.OpList, ""))
	assert.Equal(t, caller.ID, service.ListScopeFor(caller))
	assert.Equal(t, "", service.ListScopeFor(newCaller(models.UserRoleMANAGER)))
	assert.Equal(t, "", service.ListScopeFor(newCaller(models.UserRoleADMIN)))
}
