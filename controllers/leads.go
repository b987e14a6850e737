package controllers

import (
	"net/http"

	"github.com/BerniceZTT/pipeline_end/models"
	"github.com/BerniceZTT/pipeline_end/service"
	"github.com/BerniceZTT/pipeline_end/utils"

	"github.com/gin-gonic/gin"
)

// LeadController 线索相关接口
type LeadController struct {
	leads     *service.LeadService
	converter *service.ConversionService
}

// NewLeadController 创建线索控制器
func NewLeadController(leads *service.LeadService, converter *service.ConversionService) *LeadController {
	return &LeadController{leads: leads, converter: converter}
}

// List 获取线索列表
func (ctl *LeadController) List(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	leads, apiErr := ctl.leads.List(c.Request.Context(), caller)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"leads": leads}, "")
}

// Create 创建线索
func (ctl *LeadController) Create(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, apiErr := ctl.leads.Create(c.Request.Context(), caller, &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"lead": lead}, "创建线索成功", http.StatusCreated)
}

// Detail 获取线索详情
func (ctl *LeadController) Detail(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	lead, apiErr := ctl.leads.Get(c.Request.Context(), caller, c.Param("id"))
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"lead": lead}, "")
}

// Update 更新线索
func (ctl *LeadController) Update(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, apiErr := ctl.leads.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"lead": lead}, "更新线索成功")
}

// Delete 删除线索
func (ctl *LeadController) Delete(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	if apiErr := ctl.leads.Delete(c.Request.Context(), caller, c.Param("id")); apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, nil, "删除线索成功")
}

// Convert 线索转化为商机
func (ctl *LeadController) Convert(c *gin.Context) {
	caller, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	var req models.ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	opp, apiErr := ctl.converter.Convert(c.Request.Context(), caller, c.Param("id"), &req)
	if apiErr != nil {
		utils.HandleError(c, apiErr)
		return
	}

	utils.SuccessResponse(c, gin.H{"opportunity": opp}, "线索转化成功", http.StatusCreated)
}
