package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
}

func NewOrderController(orderService services.OrderServiceInterface) *OrderController {
	return &OrderController{orderService: orderService}
}

func validStatusFilter(s string) bool {
	switch dbm.OrderStatus(s) {
	case "", dbm.OrderPending, dbm.OrderApproved, dbm.OrderRejected, dbm.OrderCompleted, dbm.OrderCancelled:
		return true
	}
	return false
}

// CreateOrder godoc
// @Summary Place an order for a plan
// @Description Prices the plan server-side and redeems the coupon, if any
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body request_models.CreateOrderRequest true "Order payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders [post]
func (o *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	order, err := o.orderService.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, order, "Order created successfully")
}

// ListMyOrders godoc
// @Summary List my orders
// @Tags Orders
// @Produce json
// @Param status query string false "pending | approved | rejected | completed | cancelled"
// @Param search query string false "Match on plan name or coupon code"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders [get]
func (o *OrderController) ListMyOrders(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if !validStatusFilter(status) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	orders, err := o.orderService.ListMyOrders(c.Request.Context(), userID, status, strings.TrimSpace(c.Query("search")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "Orders fetched successfully")
}

// GetOrder godoc
// @Summary Get one of my orders
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (o *OrderController) GetOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var (
		order *response_models.OrderResponse
		err   error
	)
	if utils.IsAdmin(c) {
		order, err = o.orderService.GetOrderDetails(c.Request.Context(), orderID)
	} else {
		order, err = o.orderService.GetOrder(c.Request.Context(), userID, orderID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order fetched successfully")
}

// CancelOrder godoc
// @Summary Cancel a pending order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/cancel [post]
func (o *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := o.orderService.CancelOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order cancelled")
}

// AdminListOrders godoc
// @Summary List all orders
// @Tags Admin
// @Produce json
// @Param status query string false "Order status"
// @Param search query string false "Match on customer email/name, plan name or transaction ID"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/orders [get]
func (o *OrderController) AdminListOrders(c *gin.Context) {
	page, pageSize, err := utils.ParsePagination(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	status := c.Query("status")
	if !validStatusFilter(status) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	orders, err := o.orderService.ListOrders(c.Request.Context(), request_models.OrderFilter{
		Status:   status,
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "Orders fetched successfully")
}

// AdminGetOrder godoc
// @Summary Order details with customer and payments
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/orders/{id} [get]
func (o *OrderController) AdminGetOrder(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := o.orderService.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order fetched successfully")
}

// UpdateStatus godoc
// @Summary Move an order to a new status
// @Description Completing an order grants the subscription
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request_models.UpdateOrderStatusRequest true "Status payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/orders/{id}/status [patch]
func (o *OrderController) UpdateStatus(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	order, err := o.orderService.UpdateOrderStatus(c.Request.Context(), adminID, orderID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order status updated")
}
