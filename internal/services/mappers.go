package services

import (
	"github.com/google/uuid"
	"storefront/internal/models/db_models"
	"storefront/internal/models/response_models"
	"storefront/pkg/utils"
)

func toAccountResponse(a *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		WhatsApp:  a.WhatsApp,
		Role:      string(a.Role),
		CreatedAt: utils.FromUnixSeconds(a.CreatedAt),
	}
}

func toPlanResponse(p *db_models.Plan) response_models.PlanResponse {
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	return response_models.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceMinor:  p.PriceMinor,
		Currency:    p.Currency,
		Interval:    string(p.Interval),
		Features:    features,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		IsPopular:   p.IsPopular,
		CreatedAt:   utils.FromUnixSeconds(p.CreatedAt),
	}
}

func toCouponResponse(c *db_models.Coupon) response_models.CouponResponse {
	return response_models.CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		MaxUses:       c.MaxUses,
		UsageCount:    c.UsageCount,
		ExpiresAt:     utils.UnixPtrToTime(c.ExpiresAt),
		IsActive:      c.IsActive,
		CreatedAt:     utils.FromUnixSeconds(c.CreatedAt),
	}
}

func toPaymentMethodResponse(m *db_models.PaymentMethod) response_models.PaymentMethodResponse {
	return response_models.PaymentMethodResponse{
		ID:            m.ID,
		MethodName:    m.MethodName,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		Instructions:  m.Instructions,
		IsActive:      m.IsActive,
		CreatedAt:     utils.FromUnixSeconds(m.CreatedAt),
	}
}

func toPaymentResponse(p *db_models.Payment) response_models.PaymentResponse {
	return response_models.PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		PaymentMethodID:   p.PaymentMethodID,
		PaymentMethodName: p.PaymentMethod.MethodName,
		TransactionID:     p.TransactionID,
		ScreenshotURL:     p.ScreenshotURL,
		Status:            string(p.Status),
		CreatedAt:         utils.FromUnixSeconds(p.CreatedAt),
	}
}

// toOrderResponse includes the customer block only when withCustomer is set.
func toOrderResponse(o *db_models.Order, withCustomer bool) response_models.OrderResponse {
	payments := make([]response_models.PaymentResponse, 0, len(o.Payments))
	for i := range o.Payments {
		payments = append(payments, toPaymentResponse(&o.Payments[i]))
	}

	resp := response_models.OrderResponse{
		ID:     o.ID,
		Status: string(o.Status),
		Stage:  string(OrderStage(o)),
		Plan: response_models.OrderPlan{
			ID:         o.PlanID,
			Name:       o.Plan.Name,
			Interval:   string(o.Plan.Interval),
			PriceMinor: o.SubtotalMinor,
		},
		CouponCode:       o.CouponCode,
		SubtotalMinor:    o.SubtotalMinor,
		DiscountMinor:    o.DiscountMinor,
		TotalAmountMinor: o.TotalAmountMinor,
		Currency:         o.Currency,
		ReviewNote:       o.ReviewNote,
		ReviewedAt:       utils.UnixPtrToTime(o.ReviewedAt),
		CompletedAt:      utils.UnixPtrToTime(o.CompletedAt),
		CreatedAt:        utils.FromUnixSeconds(o.CreatedAt),
		Payments:         payments,
	}

	if withCustomer && o.Account.ID != uuid.Nil {
		resp.Customer = &response_models.OrderCustomer{
			ID:       o.Account.ID,
			FullName: o.Account.FullName,
			Email:    o.Account.Email,
			WhatsApp: o.Account.WhatsApp,
		}
	}
	return resp
}

func toOrderResponses(orders []db_models.Order, withCustomer bool) []response_models.OrderResponse {
	out := make([]response_models.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i], withCustomer))
	}
	return out
}
