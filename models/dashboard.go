package models

// LeadStatusCount 按状态统计的线索数量
type LeadStatusCount struct {
	Status LeadStatus `json:"status"`
	Count  int        `json:"count"`
}

// OpportunityStageCount 按阶段统计的商机数量
type OpportunityStageCount struct {
	Stage OpportunityStage `json:"stage"`
	Count int              `json:"count"`
}

// DashboardStats 数据看板统计信息
type DashboardStats struct {
	TotalLeads           int                     `json:"totalLeads"`
	TotalOpportunities   int                     `json:"totalOpportunities"`
	TotalValue           float64                 `json:"totalValue"`
	LeadsByStatus        []LeadStatusCount       `json:"leadsByStatus"`
	OpportunitiesByStage []OpportunityStageCount `json:"opportunitiesByStage"`
}
