package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// LeadService 线索子状态机：New → Contacted → Qualified。
// 创建时状态固定为 New；更新只校验状态值在固定集合内，
// 不限制流转方向（与线索页面的自由下拉一致）。
type LeadService struct {
	leads repository.LeadStore
}

// NewLeadService 创建线索服务
func NewLeadService(leads repository.LeadStore) *LeadService {
	return &LeadService{leads: leads}
}

// Create 创建线索，请求者成为归属者，初始状态强制为 New
func (s *LeadService) Create(ctx context.Context, caller *models.Caller, req *models.LeadCreateRequest) (*models.Lead, *utils.ApiError) {
	if apiErr := Authorize(caller, OpCreate, ""); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now()
	lead := &models.Lead{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    models.LeadStatusNew,
		OwnerID:   caller.ID,
		OwnerName: caller.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.leads.Insert(ctx, lead); err != nil {
		return nil, storeError(err, "线索")
	}

	utils.LogInfo(map[string]interface{}{
		"leadId": lead.ID.Hex(),
		"owner":  caller.ID,
	}, "创建线索成功")
	return lead, nil
}

// Get 获取单条线索。rep 访问他人线索时返回不存在而非权限不足，
// 避免跨归属边界泄露实体存在性。
func (s *LeadService) Get(ctx context.Context, caller *models.Caller, id string) (*models.Lead, *utils.ApiError) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "线索")
	}

	if apiErr := Authorize(caller, OpRead, lead.OwnerID); apiErr != nil {
		return nil, utils.CreateNotFoundError("线索")
	}
	return lead, nil
}

// Update 更新线索，空字段不修改，状态只做集合成员校验
func (s *LeadService) Update(ctx context.Context, caller *models.Caller, id string, req *models.LeadUpdateRequest) (*models.Lead, *utils.ApiError) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "线索")
	}

	if apiErr := Authorize(caller, OpUpdate, lead.OwnerID); apiErr != nil {
		return nil, apiErr
	}

	if req.Status != "" {
		status := models.LeadStatus(req.Status)
		if !models.IsValidLeadStatus(status) {
			return nil, utils.CreateInvalidStatusError(req.Status)
		}
		lead.Status = status
	}
	if req.Name != "" {
		lead.Name = req.Name
	}
	if req.Email != "" {
		lead.Email = req.Email
	}
	if req.Phone != "" {
		lead.Phone = req.Phone
	}
	lead.UpdatedAt = time.Now()

	if err := s.leads.Update(ctx, id, lead); err != nil {
		return nil, storeError(err, "线索")
	}
	return lead, nil
}

// Delete 删除线索。已转化的线索同样允许删除，
// 商机侧的 leadId 保留为悬空的历史指针。
func (s *LeadService) Delete(ctx context.Context, caller *models.Caller, id string) *utils.ApiError {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "线索")
	}

	if apiErr := Authorize(caller, OpDelete, lead.OwnerID); apiErr != nil {
		return apiErr
	}

	if err := s.leads.Delete(ctx, id); err != nil {
		return storeError(err, "线索")
	}

	utils.LogInfo(map[string]interface{}{
		"leadId": id,
		"caller": caller.ID,
	}, "删除线索成功")
	return nil
}

// List 列表线索，rep 仅看到自己名下的，manager/admin 看到全部
func (s *LeadService) List(ctx context.Context, caller *models.Caller) ([]models.Lead, *utils.ApiError) {
	if apiErr := Authorize(caller, OpList, ""); apiErr != nil {
		return nil, apiErr
	}

	leads, err := s.leads.FindAll(ctx, ListScopeFor(caller))
	if err != nil {
		return nil, storeError(err, "线索")
	}
	return leads, nil
}
