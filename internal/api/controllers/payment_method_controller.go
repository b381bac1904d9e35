package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type PaymentMethodController struct {
	methodService services.PaymentMethodServiceInterface
}

func NewPaymentMethodController(methodService services.PaymentMethodServiceInterface) *PaymentMethodController {
	return &PaymentMethodController{methodService: methodService}
}

// ListActive godoc
// @Summary Payment methods customers can pay to
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /payment-methods [get]
func (pm *PaymentMethodController) ListActive(c *gin.Context) {
	methods, err := pm.methodService.ListActive(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, methods, "Payment methods fetched successfully")
}

// ListAll godoc
// @Summary List all payment methods
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payment-methods [get]
func (pm *PaymentMethodController) ListAll(c *gin.Context) {
	methods, err := pm.methodService.ListAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, methods, "Payment methods fetched successfully")
}

// Create godoc
// @Summary Create a payment method
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentMethodRequest true "Payment method payload"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payment-methods [post]
func (pm *PaymentMethodController) Create(c *gin.Context) {
	var req request_models.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	method, err := pm.methodService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, method, "Payment method created successfully")
}

// Update godoc
// @Summary Update a payment method
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Payment method ID"
// @Param request body request_models.UpdatePaymentMethodRequest true "Payment method payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payment-methods/{id} [put]
func (pm *PaymentMethodController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	method, err := pm.methodService.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, method, "Payment method updated successfully")
}

// Delete godoc
// @Summary Delete a payment method
// @Tags Admin
// @Produce json
// @Param id path string true "Payment method ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payment-methods/{id} [delete]
func (pm *PaymentMethodController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := pm.methodService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Payment method deleted successfully")
}
