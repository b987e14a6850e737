package service

import (
	"context"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/repository"
	"github.com/BerniceZTT/pipeline_end/utils"
)

// DashboardService 数据看板统计，核心实体之上的只读派生视图
type DashboardService struct {
	leads repository.LeadStore
	opps  repository.OpportunityStore
}

// NewDashboardService 创建看板服务
func NewDashboardService(leads repository.LeadStore, opps repository.OpportunityStore) *DashboardService {
	return &DashboardService{leads: leads, opps: opps}
}

// Stats 汇总统计信息，可见范围与列表一致：rep 只统计自己名下的数据
func (s *DashboardService) Stats(ctx context.Context, caller *models.Caller) (*models.DashboardStats, *utils.ApiError) {
	if apiErr := Authorize(caller, OpList, ""); apiErr != nil {
		return nil, apiErr
	}

	scope := ListScopeFor(caller)

	leads, err := s.leads.FindAll(ctx, scope)
	if err != nil {
		return nil, storeError(err, "线索")
	}

	opps, err := s.opps.FindAll(ctx, scope)
	if err != nil {
		return nil, storeError(err, "商机")
	}

	statusCounts := make(map[models.LeadStatus]int)
	for _, lead := range leads {
		statusCounts[lead.Status]++
	}

	stageCounts := make(map[models.OpportunityStage]int)
	totalValue := 0.0
	for _, opp := range opps {
		stageCounts[opp.Stage]++
		totalValue += opp.Value
	}

	stats := &models.DashboardStats{
		TotalLeads:         len(leads),
		TotalOpportunities: len(opps),
		TotalValue:         totalValue,
	}

	// 固定枚举全量输出，数量为零的状态/阶段也保留
	for _, status := range models.AllLeadStatuses() {
		stats.LeadsByStatus = append(stats.LeadsByStatus, models.LeadStatusCount{
			Status: status,
			Count:  statusCounts[status],
		})
	}
	for _, stage := range models.AllOpportunityStages() {
		stats.OpportunitiesByStage = append(stats.OpportunitiesByStage, models.OpportunityStageCount{
			Stage: stage,
			Count: stageCounts[stage],
		})
	}

	return stats, nil
}
