package service

import (
	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// Operation 授权策略中的操作枚举
type Operation string

const (
	OpCreate      Operation = "create"
	OpRead        Operation = "read"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpList        Operation = "list"
	OpConvert     Operation = "convert"
	OpManageUsers Operation = "manage_users"
)

// Authorize 统一的授权决策函数，所有入口在任何变更前都必须先咨询这里。
// 纯函数，无副作用；决策规则：
//   - manage_users 仅限 admin；
//   - 其余实体操作 admin/manager 全量放行；
//   - rep 仅限自己名下的实体，create 与自身范围的 list 除外；
//   - 未识别的角色拒绝一切操作（包括读），fail-closed。
//
// targetOwnerID 为被操作实体的归属者ID，create 与自身范围的 list 传空。
func Authorize(caller *models.Caller, op Operation, targetOwnerID string) *utils.ApiError {
	if caller == nil || caller.ID == "" {
		return utils.CreateUnauthorizedError("")
	}

	if op == OpManageUsers {
		if caller.Role == models.UserRoleADMIN {
			return nil
		}
		return utils.CreateForbiddenError()
	}

	switch caller.Role {
	case models.UserRoleADMIN, models.UserRoleMANAGER:
		return nil
	case models.UserRoleREP:
		if op == OpCreate {
			return nil
		}
		if op == OpList && targetOwnerID == "" {
			// rep 的 list 永远限定在自己名下，由 ListScopeFor 收窄
			return nil
		}
		if targetOwnerID != "" && targetOwnerID == caller.ID {
			return nil
		}
		return utils.CreateForbiddenError()
	default:
		return utils.CreateForbiddenError()
	}
}

// ListScopeFor 返回列表查询的归属过滤范围，空串表示不过滤
func ListScopeFor(caller *models.Caller) string {
	if caller.Role == models.UserRoleADMIN || caller.Role == models.UserRoleMANAGER {
		return ""
	}
	return caller.ID
}
