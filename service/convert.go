package service

import (
	"context"
	"errors"
	"time"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// ConversionService 线索转化协调器。
// 转化是跨实体的两步操作：创建引用该线索的商机、把线索状态推进到 Qualified。
// 两步要么都发生要么都不发生：是否已转化以商机侧的 leadid 引用为准，
// 存储层在该字段上的唯一约束把并发的重复转化变成一次成功加一次冲突；
// 线索状态写入失败时删除刚创建的商机作为补偿。
type ConversionService struct {
	leads repository.LeadStore
	opps  repository.OpportunityStore
}

// NewConversionService 创建转化协调器
func NewConversionService(leads repository.LeadStore, opps repository.OpportunityStore) *ConversionService {
	return &ConversionService{leads: leads, opps: opps}
}

// Convert 把线索转化为商机。
// 新商机归属于线索的归属者（而非请求者），阶段为 Discovery；
// 源线索不删除，状态固定为 Qualified 作为转化的终点标记。
func (s *ConversionService) Convert(ctx context.Context, caller *models.Caller, leadID string, req *models.ConvertLeadRequest) (*models.Opportunity, *utils.ApiError) {
	lead, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, storeError(err, "线索")
	}

	if apiErr := Authorize(caller, OpConvert, lead.OwnerID); apiErr != nil {
		return nil, apiErr
	}

	if req.Value < 0 {
		return nil, utils.CreateInvalidValueError(req.Value)
	}

	// 一条线索最多转化一次
	if _, err := s.opps.FindByLeadID(ctx, leadID); err == nil {
		return nil, utils.CreateAlreadyConvertedError()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.CreateStoreUnavailableError(err)
	}

	now := time.Now()
	opp := &models.Opportunity{
		Title:     req.Title,
		Value:     req.Value,
		Stage:     models.OpportunityStageDiscovery,
		OwnerID:   lead.OwnerID,
		OwnerName: lead.OwnerName,
		LeadID:    leadID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.opps.Insert(ctx, opp); err != nil {
		if errors.Is(err, repository.ErrDuplicateLeadRef) {
			// 并发转化输掉的一方
			return nil, utils.CreateAlreadyConvertedError()
		}
		return nil, utils.CreateStoreUnavailableError(err)
	}

	lead.Status = models.LeadStatusQualified
	lead.UpdatedAt = now
	if err := s.leads.Update(ctx, leadID, lead); err != nil {
		// 补偿：回滚刚创建的商机，保证外界看不到半完成状态
		if delErr := s.opps.Delete(ctx, opp.ID.Hex()); delErr != nil {
			utils.LogError(delErr, map[string]interface{}{
				"leadId":        leadID,
				"opportunityId": opp.ID.Hex(),
			}, "转化补偿失败，商机与线索状态可能不一致")
			return nil, utils.CreateUncertainOperationError()
		}
		return nil, storeError(err, "线索")
	}

	utils.LogInfo(map[string]interface{}{
		"leadId":        leadID,
		"opportunityId": opp.ID.Hex(),
		"caller":        caller.ID,
	}, "线索转化成功")
	return opp, nil
}
