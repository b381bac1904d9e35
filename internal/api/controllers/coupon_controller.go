package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type CouponController struct {
	couponService services.CouponServiceInterface
}

func NewCouponController(couponService services.CouponServiceInterface) *CouponController {
	return &CouponController{couponService: couponService}
}

// ValidateCoupon godoc
// @Summary Validate a coupon against a plan
// @Description Returns the discounted price without redeeming the coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body request_models.ValidateCouponRequest true "Coupon payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /coupons/validate [post]
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	var req request_models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	quote, err := cc.couponService.ValidateCoupon(c.Request.Context(), req.Code, uuid.MustParse(req.PlanID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, quote, "Coupon applied")
}

// ListCoupons godoc
// @Summary List coupons
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons [get]
func (cc *CouponController) ListCoupons(c *gin.Context) {
	coupons, err := cc.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, coupons, "Coupons fetched successfully")
}

// CreateCoupon godoc
// @Summary Create a coupon
// @Description Flat values are in major currency units; percentages are capped at 100
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateCouponRequest true "Coupon payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons [post]
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req request_models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	coupon, err := cc.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, coupon, "Coupon created successfully")
}

// UpdateCoupon godoc
// @Summary Update a coupon
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body request_models.UpdateCouponRequest true "Coupon payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons/{id} [put]
func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	coupon, err := cc.couponService.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, coupon, "Coupon updated successfully")
}

// DeleteCoupon godoc
// @Summary Delete a coupon
// @Tags Admin
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons/{id} [delete]
func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := cc.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Coupon deleted successfully")
}
