package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// OpportunityService 商机子状态机：Discovery/Proposal/Won/Lost。
// 四个阶段之间不强制流转方向，Won/Lost 也允许再次修改；
// 金额必须非负。
type OpportunityService struct {
	opps repository.OpportunityStore
}

// NewOpportunityService 创建商机服务
func NewOpportunityService(opps repository.OpportunityStore) *OpportunityService {
	return &OpportunityService{opps: opps}
}

// Create 直接创建商机，阶段为空时默认 Discovery
func (s *OpportunityService) Create(ctx context.Context, caller *models.Caller, req *models.OpportunityCreateRequest) (*models.Opportunity, *utils.ApiError) {
	if apiErr := Authorize(caller, OpCreate, ""); apiErr != nil {
		return nil, apiErr
	}

	if req.Value < 0 {
		return nil, utils.CreateInvalidValueError(req.Value)
	}

	stage := models.OpportunityStageDiscovery
	if req.Stage != "" {
		stage = models.OpportunityStage(req.Stage)
		if !models.IsValidOpportunityStage(stage) {
			return nil, utils.CreateInvalidStageError(req.Stage)
		}
	}

	now := time.Now()
	opp := &models.Opportunity{
		Title:     req.Title,
		Value:     req.Value,
		Stage:     stage,
		OwnerID:   caller.ID,
		OwnerName: caller.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.opps.Insert(ctx, opp); err != nil {
		return nil, storeError(err, "商机")
	}

	utils.LogInfo(map[string]interface{}{
		"opportunityId": opp.ID.Hex(),
		"owner":         caller.ID,
	}, "创建商机成功")
	return opp, nil
}

// Get 获取单条商机，rep 访问他人商机时返回不存在
func (s *OpportunityService) Get(ctx context.Context, caller *models.Caller, id string) (*models.Opportunity, *utils.ApiError) {
	opp, err := s.opps.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "商机")
	}

	if apiErr := Authorize(caller, OpRead, opp.OwnerID); apiErr != nil {
		return nil, utils.CreateNotFoundError("商机")
	}
	return opp, nil
}

// Update 更新商机，空字段不修改，阶段只做集合成员校验
func (s *OpportunityService) Update(ctx context.Context, caller *models.Caller, id string, req *models.OpportunityUpdateRequest) (*models.Opportunity, *utils.ApiError) {
	opp, err := s.opps.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "商机")
	}

	if apiErr := Authorize(caller, OpUpdate, opp.OwnerID); apiErr != nil {
		return nil, apiErr
	}

	if req.Stage != "" {
		stage := models.OpportunityStage(req.Stage)
		if !models.IsValidOpportunityStage(stage) {
			return nil, utils.CreateInvalidStageError(req.Stage)
		}
		opp.Stage = stage
	}
	if req.Value != nil {
		if *req.Value < 0 {
			return nil, utils.CreateInvalidValueError(*req.Value)
		}
		opp.Value = *req.Value
	}
	if req.Title != "" {
		opp.Title = req.Title
	}
	opp.UpdatedAt = time.Now()

	if err := s.opps.Update(ctx, id, opp); err != nil {
		return nil, storeError(err, "商机")
	}
	return opp, nil
}

// Delete 删除商机
func (s *OpportunityService) Delete(ctx context.Context, caller *models.Caller, id string) *utils.ApiError {
	opp, err := s.opps.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "商机")
	}

	if apiErr := Authorize(caller, OpDelete, opp.OwnerID); apiErr != nil {
		return apiErr
	}

	if err := s.opps.Delete(ctx, id); err != nil {
		return storeError(err, "商机")
	}

	utils.LogInfo(map[string]interface{}{
		"opportunityId": id,
		"caller":        caller.ID,
	}, "删除商机成功")
	return nil
}

// List 列表商机，rep 仅看到自己名下的，manager/admin 看到全部
func (s *OpportunityService) List(ctx context.Context, caller *models.Caller) ([]models.Opportunity, *utils.ApiError) {
	if apiErr := Authorize(caller, OpList, ""); apiErr != nil {
		return nil, apiErr
	}

	opps, err := s.opps.FindAll(ctx, ListScopeFor(caller))
	if err != nil {
		return nil, storeError(err, "商机")
	}
	return opps, nil
}
