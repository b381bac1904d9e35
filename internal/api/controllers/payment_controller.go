package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
	maxUpload      int64
}

func NewPaymentController(paymentService services.PaymentService, storage services.StorageService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		maxUpload:      storage.MaxUploadBytes(),
	}
}

// SubmitPayment godoc
// @Summary Submit proof of payment for an order
// @Description Multipart form with the payment method, the transaction ID and a screenshot
// @Tags Payments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param payment_method_id formData string true "Payment method ID"
// @Param transaction_id formData string true "Transaction ID from the payment app"
// @Param screenshot formData file true "PNG, JPEG, GIF or WEBP"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/payments [post]
func (p *PaymentController) SubmitPayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	limitBody(c, p.maxUpload)

	var form request_models.SubmitPaymentForm
	if err := c.ShouldBind(&form); err != nil {
		if isTooLarge(err) {
			utils.HandleServiceError(c, utils.ErrFileTooLarge)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "payment_method_id and transaction_id are required")
		return
	}

	screenshot, err := readUpload(c, "screenshot", p.maxUpload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	payment, err := p.paymentService.SubmitPayment(c.Request.Context(), userID, orderID, form, screenshot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, payment, "Payment submitted for review")
}
