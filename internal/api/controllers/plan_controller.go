package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
	maxUpload   int64
}

func NewPlanController(planService services.PlanServiceInterface, storage services.StorageService) *PlanController {
	return &PlanController{
		planService: planService,
		maxUpload:   storage.MaxUploadBytes(),
	}
}

// ListPlans godoc
// @Summary List purchasable plans
// @Description Active plans ordered by price
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	plans, err := p.planService.ListActivePlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{id} [get]
func (p *PlanController) GetPlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	plan, err := p.planService.GetPlan(c.Request.Context(), id, false)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// AdminGetPlan godoc
// @Summary Get any plan, including inactive
// @Tags Admin
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [get]
func (p *PlanController) AdminGetPlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	plan, err := p.planService.GetPlan(c.Request.Context(), id, true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// AdminListPlans godoc
// @Summary List all plans, including inactive
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [get]
func (p *PlanController) AdminListPlans(c *gin.Context) {
	plans, err := p.planService.ListAllPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// CreatePlan godoc
// @Summary Create a plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanRequest true "Plan payload"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Update a plan
// @Description Only the fields present in the body change
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpdatePlanRequest true "Plan payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [put]
func (p *PlanController) UpdatePlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete a plan
// @Description Plans with orders cannot be deleted; deactivate them instead
// @Tags Admin
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [delete]
func (p *PlanController) DeletePlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := p.planService.DeletePlan(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}

// UploadImage godoc
// @Summary Upload a plan image
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Plan ID"
// @Param image formData file true "PNG, JPEG, GIF or WEBP"
// @Success 200 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id}/image [post]
func (p *PlanController) UploadImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limitBody(c, p.maxUpload)
	data, err := readUpload(c, "image", p.maxUpload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	plan, err := p.planService.UploadPlanImage(c.Request.Context(), id, data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan image uploaded successfully")
}
