package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type PagedData struct {
	Items    interface{} `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString(ContextTraceID),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString(ContextTraceID),
	})
}

type errorMapping struct {
	err     error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{ErrForbidden, http.StatusForbidden, "Forbidden: insufficient permissions"},

	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email is already registered"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrInvalidOtp, http.StatusBadRequest, "Invalid or expired code"},
	{ErrCannotDemoteSelf, http.StatusBadRequest, "You cannot change your own role"},

	{ErrPlanNotFound, http.StatusNotFound, "Plan not found"},
	{ErrPlanInactive, http.StatusBadRequest, "Plan is not available for purchase"},
	{ErrPlanInUse, http.StatusConflict, "Plan has orders and cannot be deleted"},

	{ErrCouponNotFound, http.StatusNotFound, "Coupon not found"},
	{ErrInvalidCoupon, http.StatusBadRequest, "Invalid coupon"},
	{ErrCouponExpired, http.StatusBadRequest, "Coupon expired"},
	{ErrCouponExhausted, http.StatusBadRequest, "Coupon usage limit reached"},
	{ErrCouponCodeConflict, http.StatusConflict, "Coupon code already exists"},

	{ErrPaymentMethodNotFound, http.StatusNotFound, "Payment method not found"},

	{ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{ErrInvalidStatusTransition, http.StatusConflict, "Order cannot move to the requested status"},
	{ErrOrderConflict, http.StatusConflict, "Order was updated by someone else, reload and retry"},
	{ErrOrderNotPayable, http.StatusConflict, "Order is not awaiting payment"},
	{ErrOrderNotCancelable, http.StatusConflict, "Order can no longer be cancelled"},

	{ErrPaymentAlreadySubmitted, http.StatusConflict, "A payment for this order is already awaiting review"},
	{ErrDuplicateTransaction, http.StatusConflict, "This transaction ID was already submitted"},
	{ErrUnsupportedFile, http.StatusUnsupportedMediaType, "Only PNG, JPEG, GIF or WEBP images are accepted"},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge, "File is too large"},
	{ErrAssetNotFound, http.StatusNotFound, "Asset not found"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			RespondError(c, m.code, m.message)
			return
		}
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString(ContextTraceID)))
	} else {
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString(ContextTraceID)))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
