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

func newOpportunityService() *service.OpportunityService {
	return service.NewOpportunityService(repository.NewMemoryOpportunityStore())
}

// TestCreateOpportunityDefaults 阶段为空时默认 Discovery
func TestCreateOpportunityDefaults(t *testing.T) {
	svc := newOpportunityService()
	rep := newCaller(models.UserRoleREP)

	opp, apiErr := svc.Create(context.Background(), rep, &models.OpportunityCreateRequest{
		Title: "年度采购合同",
		Value: 50000,
	})
	require.Nil(t, apiErr)

	assert.Equal(t, models.OpportunityStageDiscovery, opp.Stage)
	assert.Equal(t, rep.ID, opp.OwnerID)
	assert.Empty(t, opp.LeadID)
}

// TestCreateOpportunityNegativeValue 负金额拒绝
func TestCreateOpportunityNegativeValue(t *testing.T) {
	svc := newOpportunityService()
	rep := newCaller(models.UserRoleREP)

	_, apiErr := svc.Create(context.Background(), rep, &models.OpportunityCreateRequest{
		Title: "非法商机",
		Value: -1,
	})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeInvalidValue, apiErr.ErrorCode)

	// 金额为零合法
	opp, apiErr := svc.Create(context.Background(), rep, &models.OpportunityCreateRequest{
		Title: "零金额商机",
		Value: 0,
	})
	require.Nil(t, apiErr)
	assert.Equal(t, 0.0, opp.Value)
}

// TestUpdateOpportunityStageMembership 阶段更新只做集合成员校验，
// Won/Lost 不是机器层面的终态，允许再次修改
func TestUpdateOpportunityStageMembership(t *testing.T) {
	svc := newOpportunityService()
	rep := newCaller(models.UserRoleREP)

	opp, apiErr := svc.Create(context.Background(), rep, &models.OpportunityCreateRequest{
		Title: "框架协议",
		Value: 12000,
		Stage: string(models.OpportunityStageWon),
	})
	require.Nil(t, apiErr)
	assert.Equal(t, models.OpportunityStageWon, opp.Stage)

	// Won 回退到 Discovery
	updated, apiErr := svc.Update(context.Background(), rep, opp.ID.Hex(),
		&models.OpportunityUpdateRequest{Stage: string(models.OpportunityStageDiscovery)})
	require.Nil(t, apiErr)
	assert.Equal(t, models.OpportunityStageDiscovery, updated.Stage)

	for _, stage := range models.AllOpportunityStages() {
		_, apiErr := svc.Update(context.Background(), rep, opp.ID.Hex(),
			&models.OpportunityUpdateRequest{Stage: string(stage)})
		require.Nil(t, apiErr, "阶段 %s 应合法", stage)
	}

	_, apiErr = svc.Update(context.Background(), rep, opp.ID.Hex(),
		&models.OpportunityUpdateRequest{Stage: "Closed"})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeInvalidStage, apiErr.ErrorCode)
}

// TestUpdateOpportunityNegativeValue 更新为负金额拒绝，原值保持不变
func TestUpdateOpportunityNegativeValue(t *testing.T) {
	svc := newOpportunityService()
	rep := newCaller(models.UserRoleREP)

	opp, apiErr := svc.Create(context.Background(), rep, &models.OpportunityCreateRequest{
		Title: "设备订单",
		Value: 8000,
	})
	require.Nil(t, apiErr)

	bad := -100.0
	_, apiErr = svc.Update(context.Background(), rep, opp.ID.Hex(),
		&models.OpportunityUpdateRequest{Value: &bad})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeInvalidValue, apiErr.ErrorCode)

	got, apiErr := svc.Get(context.Background(), rep, opp.ID.Hex())
	require.Nil(t, apiErr)
	assert.Equal(t, 8000.0, got.Value)
}

// TestOpportunityCrossOwnerAccess rep 访问他人商机：读判不存在，改判权限不足
func TestOpportunityCrossOwnerAccess(t *testing.T) {
	svc := newOpportunityService()
	owner := newCaller(models.UserRoleREP)
	other := newCaller(models.UserRoleREP)
	admin := newCaller(models.UserRoleADMIN)

	opp, apiErr := svc.Create(context.Background(), owner, &models.OpportunityCreateRequest{
		Title: "渠道合作",
		Value: 30000,
	})
	require.Nil(t, apiErr)

	_, apiErr = svc.Get(context.Background(), other, opp.ID.Hex())
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeNotFound, apiErr.ErrorCode)

	_, apiErr = svc.Update(context.Background(), other, opp.ID.Hex(),
		&models.OpportunityUpdateRequest{Stage: string(models.OpportunityStageLost)})
	require.NotNil(t, apiErr)
	assert.Equal(t, utils.ErrCodeForbidden, apiErr.ErrorCode)

	// admin 跨归属可改
	updated, apiErr := svc.Update(context.Background(), admin, opp.ID.Hex(),
		&models.OpportunityUpdateRequest{Stage: string(models.OpportunityStageProposal)})
	require.Nil(t, apiErr)
	assert.Equal(t, models.OpportunityStageProposal, updated.Stage)
}
