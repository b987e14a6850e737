package controllers

import (
	"net/http"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// OpportunityController 商机相关接口
type OpportunityController struct {
	opps *service.OpportunityService
}

// NewOpportunityController 创建商机控制器
func NewOpportunityController(opps *service.OpportunityService) *OpportunityController {
	return &OpportunityController{opps: opps}
}

// List 获取商机列表
func (ctl *OpportunityController) List(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	opps, apiErr := ctl.opps.List(c.Request.Context(), caller)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"opportunities": opps}, "")
}

// Create 创建商机
func (ctl *OpportunityController) Create(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.OpportunityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	opp, apiErr := ctl.opps.Create(c.Request.Context(), caller, &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"opportunity": opp}, "创建商机成功", http.StatusCreated)
}

// Detail 获取商机详情
func (ctl *OpportunityController) Detail(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	opp, apiErr := ctl.opps.Get(c.Request.Context(), caller, c.Param("id"))
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"opportunity": opp}, "")
}

// Update 更新商机
func (ctl *OpportunityController) Update(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.OpportunityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	opp, apiErr := ctl.opps.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"opportunity": opp}, "更新商机成功")
}

// Delete 删除商机
func (ctl *OpportunityController) Delete(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	if apiErr := ctl.opps.Delete(c.Request.Context(), caller, c.Param("id")); apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, nil, "删除商机成功")
}
