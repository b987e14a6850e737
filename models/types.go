package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleREP     UserRole = "rep"     // 销售代表
	UserRoleMANAGER UserRole = "manager" // 销售经理
	UserRoleADMIN   UserRole = "admin"   // 管理员
)

// IsValidRole 检查角色是否在允许的集合内
func IsValidRole(role UserRole) bool {
	switch role {
	case UserRoleREP, UserRoleMANAGER, UserRoleADMIN:
		return true
	}
	return false
}

// LeadStatus 线索状态枚举
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
)

// IsValidLeadStatus 检查线索状态是否在固定集合内
func IsValidLeadStatus(status LeadStatus) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified:
		return true
	}
	return false
}

// AllLeadStatuses 按流转顺序返回所有线索状态
func AllLeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified}
}

// OpportunityStage 商机阶段枚举
type OpportunityStage string

const (
	OpportunityStageDiscovery OpportunityStage = "Discovery"
	OpportunityStageProposal  OpportunityStage = "Proposal"
	OpportunityStageWon       OpportunityStage = "Won"
	OpportunityStageLost      OpportunityStage = "Lost"
)

// IsValidOpportunityStage 检查商机阶段是否在固定集合内
func IsValidOpportunityStage(stage OpportunityStage) bool {
	switch stage {
	case OpportunityStageDiscovery, OpportunityStageProposal,
		OpportunityStageWon, OpportunityStageLost:
		return true
	}
	return false
}

// AllOpportunityStages 按流转顺序返回所有商机阶段
func AllOpportunityStages() []OpportunityStage {
	return []OpportunityStage{
		OpportunityStageDiscovery,
		OpportunityStageProposal,
		OpportunityStageWon,
		OpportunityStageLost,
	}
}

// User 用户类型
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // 不返回密码
	Role      UserRole           `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Caller 已验证的请求者身份，由认证中间件写入请求上下文
type Caller struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// Lead 线索模型
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Status    LeadStatus         `bson:"status" json:"status"`
	OwnerID   string             `bson:"ownerid" json:"ownerId"`
	OwnerName string             `bson:"ownername" json:"ownerName"`
	CreatedAt time.Time          `bson:"createdat" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedat" json:"updatedAt"`
}

// Opportunity 商机模型
type Opportunity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Value     float64            `bson:"value" json:"value"`
	Stage     OpportunityStage   `bson:"stage" json:"stage"`
	OwnerID   string             `bson:"ownerid" json:"ownerId"`
	OwnerName string             `bson:"ownername" json:"ownerName"`
	// 转化来源线索，直接创建的商机该字段为空
	LeadID    string    `bson:"leadid,omitempty" json:"leadId,omitempty"`
	CreatedAt time.Time `bson:"createdat" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedat" json:"updatedAt"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// CreateUserRequest 创建用户请求（仅管理员）
	CreateUserRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// LeadCreateRequest 创建线索请求，状态固定为 New，不接受外部值
	LeadCreateRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	// LeadUpdateRequest 更新线索请求，空字段不修改
	LeadUpdateRequest struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Status string `json:"status"`
	}

	// OpportunityCreateRequest 创建商机请求，阶段为空时默认 Discovery
	OpportunityCreateRequest struct {
		Title string  `json:"title" binding:"required"`
		Value float64 `json:"value"`
		Stage string  `json:"stage"`
	}

	// OpportunityUpdateRequest 更新商机请求，空字段不修改
	OpportunityUpdateRequest struct {
		Title string   `json:"title"`
		Value *float64 `json:"value"`
		Stage string   `json:"stage"`
	}

	// ConvertLeadRequest 线索转化请求
	ConvertLeadRequest struct {
		Title string  `json:"title" binding:"required"`
		Value float64 `json:"value"`
	}
)
